package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign/foreigntest"
	"github.com/wippyai/docbridge/itext/kernel"
	"github.com/wippyai/docbridge/runtime"
	"github.com/wippyai/docbridge/wire"
)

func dryRunEnv(t *testing.T) *runtime.Runtime {
	t.Helper()
	ref := foreigntest.New()
	rt := runtime.NewWithDispatcher(wire.Loopback(ref))
	t.Cleanup(func() {
		_ = rt.Close(context.Background())
		_ = ref.Close()
	})
	return rt
}

func TestRenderInvoice(t *testing.T) {
	rt := dryRunEnv(t)
	env := rt.Attach(context.Background())

	pdf, err := render(env, invoice{
		title:  "Invoice #7",
		page:   kernel.A5,
		lines:  []lineItem{{"Widget", "2.50"}, {"Gadget", "7.00"}},
		ean:    "4006381333931",
		footer: "thanks",
	})
	require.NoError(t, err)

	s := string(pdf)
	assert.Contains(t, s, "%PDF-1.7")
	assert.Contains(t, s, "Invoice #7")
	assert.Contains(t, s, "Widget")
	assert.Contains(t, s, "/MediaBox [0 0 420 595]")
	assert.Contains(t, s, "%%EOF")
}

func TestRenderRejectsBadCode(t *testing.T) {
	rt := dryRunEnv(t)
	env := rt.Attach(context.Background())

	_, err := render(env, invoice{title: "x", page: kernel.A4, ean: "12ab"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))
}

func TestListPresets(t *testing.T) {
	rt := dryRunEnv(t)
	env := rt.Attach(context.Background())

	list, err := listPresets(env)
	require.NoError(t, err)
	require.Len(t, list, len(kernel.PageSizePresets()))
	for _, p := range list {
		if p.preset == kernel.Letter {
			assert.Equal(t, float32(612), p.width)
			assert.Equal(t, float32(792), p.height)
		}
	}
}

func TestParseItems(t *testing.T) {
	lines, err := parseItems(" A=1, B=2 ,")
	require.NoError(t, err)
	assert.Equal(t, []lineItem{{"A", "1"}, {"B", "2"}}, lines)

	_, err = parseItems("nope")
	assert.Error(t, err)

	lines, err = parseItems("")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
