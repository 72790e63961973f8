// Package config loads the JSON settings file (§6) and turns its plugin
// descriptors into concrete inputtext.Plugin / oov.Provider instances.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/errs"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/oov"
)

// Config is the JSON settings document (§6's table).
type Config struct {
	SystemDict              string             `json:"systemDict"`
	UserDict                []string           `json:"userDict"`
	CharacterDefinitionFile string             `json:"characterDefinitionFile"`
	InputTextPlugin         []PluginDescriptor `json:"inputTextPlugin"`
	OovProviderPlugin       []PluginDescriptor `json:"oovProviderPlugin"`
	// PathRewritePlugin is reserved and currently always empty (§6); it is
	// decoded but nothing reads it.
	PathRewritePlugin []json.RawMessage `json:"pathRewritePlugin"`
}

// PluginDescriptor is one entry of an "...Plugin" array: a class name
// selecting the concrete plugin, plus every field any supported class
// might use. Unused fields for a given class are simply ignored.
type PluginDescriptor struct {
	Class string `json:"class"`

	// default-rewrite / prolonged-sound-mark (inputTextPlugin)
	ProlongedSoundMarks []string `json:"prolongedSoundMarks"`
	ReplacementSymbol   string   `json:"replacementSymbol"`

	// simple-oov / mecab-oov (oovProviderPlugin)
	LeftID  int16    `json:"leftId"`
	RightID int16    `json:"rightId"`
	Cost    int16    `json:"cost"`
	OovPOS  []string `json:"oovPOS"`
	CharDef string   `json:"charDef"`
	UnkDef  string   `json:"unkDef"`
}

const (
	classDefaultRewrite = "sudachipy.plugin.input_text.DefaultInputTextPlugin"
	classProlongedSound = "sudachipy.plugin.input_text.ProlongedSoundMarkInputTextPlugin"
	classSimpleOOV      = "sudachipy.plugin.oov.SimpleOovProviderPlugin"
	classMecabOOV       = "sudachipy.plugin.oov.MeCabOovProviderPlugin"
)

// Load decodes a settings document from r.
func Load(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errs.Wrap(errs.InvalidFormat, err, "malformed configuration JSON")
	}
	return &c, nil
}

// LoadFile opens and decodes path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// resolve joins a config-relative path against resourceDir, leaving
// absolute paths untouched.
func resolve(resourceDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(resourceDir, path)
}

// BuildInputTextPlugins instantiates the configured inputTextPlugin
// chain, in declared order.
func (c *Config) BuildInputTextPlugins(resourceDir string) ([]inputtext.Plugin, error) {
	plugins := make([]inputtext.Plugin, 0, len(c.InputTextPlugin))
	for _, d := range c.InputTextPlugin {
		switch d.Class {
		case classDefaultRewrite:
			f, err := os.Open(resolve(resourceDir, "rewrite.def"))
			if err != nil {
				return nil, err
			}
			p, err := inputtext.NewRewritePlugin(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			plugins = append(plugins, p)
		case classProlongedSound:
			plugins = append(plugins, inputtext.NewProlongedSoundMarkPlugin(d.ProlongedSoundMarks, d.ReplacementSymbol))
		default:
			return nil, errs.Newf(errs.InvalidFormat, "%s is not a valid inputTextPlugin class", d.Class)
		}
	}
	return plugins, nil
}

// BuildOOVProviders instantiates the configured oovProviderPlugin chain,
// resolving each provider's POS/category tables against grammar.
func (c *Config) BuildOOVProviders(resourceDir string, grammar *dic.Grammar) ([]oov.Provider, error) {
	providers := make([]oov.Provider, 0, len(c.OovProviderPlugin))
	for _, d := range c.OovProviderPlugin {
		switch d.Class {
		case classSimpleOOV:
			var pos dic.POS
			copy(pos[:], d.OovPOS)
			providers = append(providers, oov.NewSimpleProvider(grammar, d.LeftID, d.RightID, d.Cost, pos))
		case classMecabOOV:
			charDef, err := os.Open(resolve(resourceDir, d.CharDef))
			if err != nil {
				return nil, err
			}
			unkDef, err := os.Open(resolve(resourceDir, d.UnkDef))
			if err != nil {
				charDef.Close()
				return nil, err
			}
			p, err := oov.NewMecabProvider(charDef, unkDef, grammar)
			charDef.Close()
			unkDef.Close()
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		default:
			return nil, errs.Newf(errs.InvalidFormat, "%s is not a valid oovProviderPlugin class", d.Class)
		}
	}
	return providers, nil
}

// SystemDictPath resolves the configured systemDict path against
// resourceDir.
func (c *Config) SystemDictPath(resourceDir string) string {
	return resolve(resourceDir, c.SystemDict)
}

// CharacterDefinitionPath resolves the configured characterDefinitionFile
// path, or errs.NotDefined if the key is absent.
func (c *Config) CharacterDefinitionPath(resourceDir string) (string, error) {
	if c.CharacterDefinitionFile == "" {
		return "", errs.New(errs.NotDefined, "characterDefinitionFile not set")
	}
	return resolve(resourceDir, c.CharacterDefinitionFile), nil
}

// UserDictPaths resolves every configured userDict path.
func (c *Config) UserDictPaths(resourceDir string) []string {
	paths := make([]string, len(c.UserDict))
	for i, p := range c.UserDict {
		paths[i] = resolve(resourceDir, p)
	}
	return paths
}
