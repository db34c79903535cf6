package catalogs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/catalogs"
	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	"github.com/andrescamacho/craftreq/internal/domain/catalog"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

func TestLoad_YAMLAndJSONBuildTheSameCatalog(t *testing.T) {
	// Act
	fromYAML, err := catalogs.Load("testdata/catalog.yaml")
	require.NoError(t, err)
	fromJSON, err := catalogs.Load("testdata/catalog.json")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, fromYAML.Catalog.Digest(), fromJSON.Catalog.Digest())
	assert.NotEqual(t, fromYAML.FileDigest, fromJSON.FileDigest)

	cat := fromYAML.Catalog
	assert.Equal(t, "wood sawing", cat.QualityName("SAW_W"))
	level, ok := cat.QualityLevel("knife", "CUT")
	require.True(t, ok)
	assert.Equal(t, 2, level)
	assert.Equal(t, []string{"hammer", "knife", "log", "nail", "plank", "saw"}, cat.ItemIDs())
}

func TestFile_BuildRejectsDuplicates(t *testing.T) {
	f := &catalogs.File{Items: []catalogs.ItemDef{{ID: "plank"}, {ID: "plank"}}}

	_, err := f.Build()

	var dup *catalog.ErrDuplicateEntry
	assert.True(t, errors.As(err, &dup))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalogs.Load("testdata/does-not-exist.json")
	assert.Error(t, err)
}

func TestShippedDataIsConsistent(t *testing.T) {
	// Arrange
	loaded, err := catalogs.Load("../../../data/catalog.yaml")
	require.NoError(t, err)

	// Act
	res, err := declarations.LoadFile("../../../data/declarations.yaml")
	require.NoError(t, err)

	// Assert
	assert.Empty(t, res.Errors)
	require.Len(t, res.Declarations, 3)
	for _, decl := range res.Declarations {
		assert.Empty(t, crafting.Validate(decl.Set, loaded.Catalog), decl.ID)
	}
}
