package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/domain/catalog"
)

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "CUT", Name: "cutting"}))
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "HAMMER", Name: "hammering"}))
	require.NoError(t, b.AddItemType(catalog.ItemType{
		ID:   "knife",
		Name: "pocket knife",
		Qualities: []catalog.QualityLevel{
			{Quality: "CUT", Level: 2},
		},
	}))
	require.NoError(t, b.AddItemType(catalog.ItemType{ID: "plank"}))
	return b.Build()
}

func TestCatalog_Lookups(t *testing.T) {
	// Arrange
	c := buildTestCatalog(t)

	// Assert
	assert.True(t, c.HasQuality("CUT"))
	assert.False(t, c.HasQuality("SAW"))
	assert.True(t, c.ItemExists("plank"))
	assert.False(t, c.ItemExists("nail"))
	assert.Equal(t, "cutting", c.QualityName("CUT"))
	assert.Equal(t, "SAW", c.QualityName("SAW"))
	assert.Equal(t, "pocket knife", c.ItemName("knife"))
	assert.Equal(t, "plank", c.ItemName("plank"))

	level, ok := c.QualityLevel("knife", "CUT")
	assert.True(t, ok)
	assert.Equal(t, 2, level)

	_, ok = c.QualityLevel("knife", "HAMMER")
	assert.False(t, ok)
	assert.Nil(t, c.IntrinsicQualities("nail"))
}

func TestCatalog_IntrinsicQualitiesReturnsCopy(t *testing.T) {
	// Arrange
	c := buildTestCatalog(t)

	// Act
	qualities := c.IntrinsicQualities("knife")
	qualities[0].Level = 99

	// Assert
	level, _ := c.QualityLevel("knife", "CUT")
	assert.Equal(t, 2, level)
}

func TestBuilder_RejectsDuplicatesAndWritesAfterBuild(t *testing.T) {
	// Arrange
	b := catalog.NewBuilder()
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "CUT"}))

	// Act
	dupErr := b.AddQuality(catalog.Quality{ID: "CUT"})
	emptyErr := b.AddItemType(catalog.ItemType{})
	b.Build()
	sealedErr := b.AddItemType(catalog.ItemType{ID: "plank"})

	// Assert
	var dup *catalog.ErrDuplicateEntry
	require.True(t, errors.As(dupErr, &dup))
	assert.Equal(t, "quality", dup.Kind)

	var invalid *catalog.ErrInvalidEntry
	assert.True(t, errors.As(emptyErr, &invalid))

	var sealed *catalog.ErrBuilderSealed
	assert.True(t, errors.As(sealedErr, &sealed))
}

func TestCatalog_DigestIndependentOfInsertionOrder(t *testing.T) {
	// Arrange
	a := catalog.NewBuilder()
	require.NoError(t, a.AddQuality(catalog.Quality{ID: "CUT", Name: "cutting"}))
	require.NoError(t, a.AddQuality(catalog.Quality{ID: "SAW", Name: "sawing"}))

	b := catalog.NewBuilder()
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "SAW", Name: "sawing"}))
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "CUT", Name: "cutting"}))

	// Assert
	assert.Equal(t, a.Build().Digest(), b.Build().Digest())
	assert.Equal(t, []string{"CUT", "SAW"}, a.Build().QualityIDs())
}
