package declarations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
)

func TestLoadFile_JSONContinuesPastBrokenDeclaration(t *testing.T) {
	// Act
	res, err := declarations.LoadFile("testdata/bookshelf.json")

	// Assert
	require.NoError(t, err)
	require.Len(t, res.Declarations, 1)
	assert.Equal(t, "bookshelf", res.Declarations[0].ID)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "broken", res.Errors[0].DeclarationID)
	assert.Equal(t, "requirements.skills[0].difficulty", res.Errors[0].Field)
	assert.Len(t, res.Digest, 64)
}

func TestLoadFile_YAMLLegacy(t *testing.T) {
	// Act
	res, err := declarations.LoadFile("testdata/legacy.yaml")

	// Assert
	require.NoError(t, err)
	require.Len(t, res.Declarations, 1)

	decl := res.Declarations[0]
	assert.Equal(t, declarations.FormatLegacy, decl.Format)
	assert.Len(t, decl.Set.Tools(), 1)
	assert.Len(t, decl.Set.Components(), 2)
	assert.Len(t, decl.Set.Skills(), 2)

	require.Len(t, res.Errors, 1, "a non-string id fails the envelope schema")
	assert.Equal(t, "#1", res.Errors[0].DeclarationID)
	assert.Equal(t, "id", res.Errors[0].Field)
}

func TestLoadJSON_SingleDocumentAndWrapper(t *testing.T) {
	single, err := declarations.LoadJSON([]byte(`{"id": "a", "requirements": {}}`))
	require.NoError(t, err)
	assert.Len(t, single.Declarations, 1)

	wrapped, err := declarations.LoadJSON([]byte(`{"declarations": [{"id": "a"}, {"id": "b"}]}`))
	require.NoError(t, err)
	assert.Len(t, wrapped.Declarations, 2)
}

func TestLoadJSON_DuplicateIDs(t *testing.T) {
	res, err := declarations.LoadJSON([]byte(`[{"id": "a"}, {"id": "a"}]`))

	require.NoError(t, err)
	assert.Len(t, res.Declarations, 1)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "duplicate declaration id", res.Errors[0].Reason)
}

func TestLoadJSON_SchemaRejectsUnknownRequirementKeys(t *testing.T) {
	res, err := declarations.LoadJSON([]byte(`[{"id": "a", "requirements": {"gadgets": []}}]`))

	require.NoError(t, err)
	assert.Empty(t, res.Declarations)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "a", res.Errors[0].DeclarationID)
}

func TestLoadJSON_MalformedFile(t *testing.T) {
	_, err := declarations.LoadJSON([]byte(`[{"id": `))
	assert.Error(t, err)

	_, err = declarations.LoadJSON([]byte(`"just a string"`))
	assert.Error(t, err)
}
