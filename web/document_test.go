package web

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/landing/vdom"
)

func TestDocument_Render(t *testing.T) {
	doc := Document{Title: "A & B", Description: "desc"}
	var sb strings.Builder

	err := doc.Render(&sb, vdom.Fragment(vdom.Paragraph("hi", nil)))

	require.NoError(t, err)
	out := sb.String()
	assert.Contains(t, out, `<html lang="en">`, "empty lang defaults to en")
	assert.Contains(t, out, "<title>A &amp; B</title>")
	assert.Contains(t, out, `<meta name="description" content="desc">`)
	assert.NotContains(t, out, "stylesheet", "no stylesheet configured")
	assert.Contains(t, out, `<div id="app"><p>hi</p></div>`)
}

func TestPageCache(t *testing.T) {
	c := newPageCache(true)
	var builds atomic.Int32
	build := func() (*renderedPage, error) {
		builds.Add(1)
		return newRenderedPage([]byte("body"), 200), nil
	}

	p1, hit, err := c.get("/", build)
	require.NoError(t, err)
	assert.False(t, hit)
	p2, hit, err := c.get("/", build)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, p1, p2)
	assert.Equal(t, int32(1), builds.Load())

	_, _, err = c.get("/err", func() (*renderedPage, error) { return nil, errors.New("nope") })
	assert.Error(t, err)
	assert.Equal(t, 1, c.len())

	off := newPageCache(false)
	_, hit, _ = off.get("/", build)
	_, hit2, _ := off.get("/", build)
	assert.False(t, hit || hit2)
	assert.Equal(t, 0, off.len())
}

func TestRenderedPageETag(t *testing.T) {
	a := newRenderedPage([]byte("x"), 200)
	b := newRenderedPage([]byte("x"), 200)
	c := newRenderedPage([]byte("y"), 200)

	assert.Equal(t, a.ETag, b.ETag)
	assert.NotEqual(t, a.ETag, c.ETag)
	assert.Len(t, a.ETag, 18, "16 hex digits plus quotes")
}
