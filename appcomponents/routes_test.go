package appcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/landing/appcomponents/pages"
)

func TestNewRouter(t *testing.T) {
	r := NewRouter(pages.Revision2)

	comp, _, found := r.Resolve("/")
	require.True(t, found)
	home, ok := comp.(*pages.Home)
	require.True(t, ok, "expected *pages.Home, got %T", comp)
	assert.Equal(t, pages.Revision2, home.Revision())

	comp, params, found := r.Resolve("/revisions/r1")
	require.True(t, found)
	assert.Equal(t, "r1", params["rev"])
	assert.Equal(t, pages.Revision1, comp.(*pages.Home).Revision())

	comp, _, found = r.Resolve("/revisions/9")
	require.True(t, found, "the route matches even when the revision is unknown")
	nf, ok := comp.(*pages.NotFound)
	require.True(t, ok, "expected *pages.NotFound, got %T", comp)
	assert.Equal(t, "/revisions/9", nf.Path)

	comp, _, found = r.Resolve("/pricing")
	assert.False(t, found)
	assert.Equal(t, "/pricing", comp.(*pages.NotFound).Path)
}

func TestNewRouter_InvalidHomeFallsBackToLatest(t *testing.T) {
	comp, _, _ := NewRouter(pages.Revision(42)).Resolve("/")
	assert.Equal(t, pages.LatestRevision, comp.(*pages.Home).Revision())
}
