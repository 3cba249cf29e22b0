package manifest_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	manifest "github.com/mutablelogic/go-tools/pkg/manifest"
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	observer "go.uber.org/zap/zaptest/observer"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type fake struct {
	name        string
	description string
	input       *schema.Type
	output      *schema.Type
}

func (f *fake) Name() string               { return f.name }
func (f *fake) Description() string        { return f.description }
func (f *fake) InputSchema() *schema.Type  { return f.input }
func (f *fake) OutputSchema() *schema.Type { return f.output }

func (f *fake) Run(context.Context, json.RawMessage) (any, error) {
	return nil, tools.ErrNotImplemented
}

func lookup() *fake {
	return &fake{
		name:        "lookup",
		description: "Lookup a value",
		input:       schema.Object(schema.Prop("key", schema.String().Min(1).Describe("Key to lookup"))),
		output:      schema.Object(schema.Prop("value", schema.String())),
	}
}

func generator(t *testing.T, resolver manifest.Resolver, opts ...manifest.Opt) (*manifest.Generator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := manifest.New(resolver, append([]manifest.Opt{manifest.OptLogger(zap.New(core))}, opts...)...)
	require.NoError(t, err)
	return g, logs
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_generator_001(t *testing.T) {
	assert := assert.New(t)

	// Missing export is skipped with a warning
	g, logs := generator(t, manifest.Resolver{
		"tools/a.js": func() (manifest.Module, error) {
			return manifest.Module{"other": lookup()}, nil
		},
	})
	m, err := g.Generate(t.Context(), &manifest.Registry{Exports: []manifest.Export{
		{ID: "lookupValue", VirtualPath: "tools/a.js"},
	}})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.NotNil(m.Tools)
	assert.Empty(m.Tools)
	assert.Equal(1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func Test_generator_002(t *testing.T) {
	assert := assert.New(t)

	// Tools without a schema are skipped with a debug note
	g, logs := generator(t, manifest.Resolver{
		"tools/a.js": func() (manifest.Module, error) {
			return manifest.Module{
				"noInput":  &fake{name: "no_input", output: schema.Object()},
				"noOutput": &fake{name: "no_output", input: schema.Object()},
				"lookup":   lookup(),
			}, nil
		},
	})
	m, err := g.Generate(t.Context(), &manifest.Registry{Exports: []manifest.Export{
		{ID: "noInput", VirtualPath: "tools/a.js"},
		{ID: "noOutput", VirtualPath: "tools/a.js"},
		{ID: "lookup", VirtualPath: "tools/a.js"},
	}})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]string{"lookup"}, m.Names())
	assert.Equal(2, logs.FilterLevelExact(zapcore.DebugLevel).Len())
	assert.Zero(logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func Test_generator_003(t *testing.T) {
	assert := assert.New(t)

	// Each target is loaded once per run, and again on the next run
	var loads atomic.Int32
	g, _ := generator(t, manifest.Resolver{
		"tools/a.js": func() (manifest.Module, error) {
			loads.Add(1)
			return manifest.Module{"one": lookup(), "two": lookup(), "three": lookup()}, nil
		},
	}, manifest.OptParallel(3))
	registry := &manifest.Registry{Exports: []manifest.Export{
		{ID: "one", VirtualPath: "tools/a.js"},
		{ID: "two", VirtualPath: "tools/a.js"},
		{ID: "three", VirtualPath: "tools/a.js"},
	}}

	m, err := g.Generate(t.Context(), registry)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(int32(1), loads.Load())
	assert.Equal([]string{"one", "two", "three"}, m.Names())

	_, err = g.Generate(t.Context(), registry)
	assert.NoError(err)
	assert.Equal(int32(2), loads.Load())
}

func Test_generator_004(t *testing.T) {
	assert := assert.New(t)

	// Load failures and unknown targets are skipped with a warning
	g, logs := generator(t, manifest.Resolver{
		"tools/broken.js": func() (manifest.Module, error) {
			return nil, tools.ErrInternalServerError.With("broken")
		},
		"tools/a.js": func() (manifest.Module, error) {
			return manifest.Module{"lookup": lookup()}, nil
		},
	})
	m, err := g.Generate(t.Context(), &manifest.Registry{Exports: []manifest.Export{
		{ID: "broken", VirtualPath: "tools/broken.js"},
		{ID: "missing", VirtualPath: "tools/missing.js"},
		{ID: "lookup", VirtualPath: "tools/a.js"},
	}})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]string{"lookup"}, m.Names())
	assert.Equal(2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func Test_generator_005(t *testing.T) {
	assert := assert.New(t)

	// Description defaults to the tool id
	g, _ := generator(t, manifest.Resolver{
		"tools/a.js": func() (manifest.Module, error) {
			f := lookup()
			f.description = ""
			return manifest.Module{"lookupValue": f}, nil
		},
	})
	m, err := g.Generate(t.Context(), &manifest.Registry{Exports: []manifest.Export{
		{ID: "lookupValue", VirtualPath: "tools/a.js"},
	}})
	if assert.NoError(err) && assert.Len(m.Tools, 1) {
		assert.Equal("lookupValue", m.Tools[0].Name)
		assert.Equal("Tool for lookupValue", m.Tools[0].Description)
	}
}

func Test_generator_006(t *testing.T) {
	assert := assert.New(t)

	// Running twice produces identical bytes
	resolver := manifest.Resolver{
		"tools/a.js": func() (manifest.Module, error) {
			return manifest.Module{"lookup": lookup(), "other": lookup()}, nil
		},
	}
	dir := t.TempDir()
	registry := filepath.Join(dir, "functions.json")
	require.NoError(t, os.WriteFile(registry, []byte(`{
  "exports": [
    { "id": "other", "virtualPath": "tools/a.js" },
    { "id": "lookup", "virtualPath": "tools/a.js" }
  ]
}`), 0o644))

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		g, logs := generator(t, resolver, manifest.OptParallel(4))
		output := filepath.Join(dir, "out", "tools.schema.yaml")
		m, err := g.Run(t.Context(), registry, output)
		if !assert.NoError(err) {
			t.FailNow()
		}
		assert.Equal([]string{"other", "lookup"}, m.Names())
		assert.Equal(1, logs.FilterMessage("wrote 2 tool schemas to "+output).Len())

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}
	assert.Equal(string(outputs[0]), string(outputs[1]))
}

func Test_generator_007(t *testing.T) {
	assert := assert.New(t)

	// Registry parse failures abort the run and write nothing
	dir := t.TempDir()
	registry := filepath.Join(dir, "functions.json")
	output := filepath.Join(dir, "tools.schema.yaml")
	require.NoError(t, os.WriteFile(registry, []byte(`{"exports": [`), 0o644))

	g, _ := generator(t, manifest.Resolver{})
	_, err := g.Run(t.Context(), registry, output)
	assert.ErrorIs(err, tools.ErrBadParameter)
	assert.NoFileExists(output)

	_, err = g.Run(t.Context(), filepath.Join(dir, "missing.json"), output)
	assert.Error(err)
}

func Test_generator_008(t *testing.T) {
	assert := assert.New(t)

	_, err := manifest.New(nil)
	assert.ErrorIs(err, tools.ErrBadParameter)
	_, err = manifest.New(manifest.Resolver{}, manifest.OptParallel(0))
	assert.ErrorIs(err, tools.ErrBadParameter)

	g, _ := generator(t, manifest.Resolver{})
	_, err = g.Generate(t.Context(), nil)
	assert.ErrorIs(err, tools.ErrBadParameter)
}

func Test_generator_009(t *testing.T) {
	assert := assert.New(t)

	// A tool module satisfies the toolkit contract
	tk, err := tool.NewToolkit(lookup())
	if assert.NoError(err) {
		assert.NotNil(tk.Lookup("lookup"))
	}
}
