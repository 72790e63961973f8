// Package analyzer is the top-level entry point: it loads a settings
// file, assembles the system dictionary plus every configured user
// dictionary into one merged lexicon set, and hands out Tokenizer
// handles bound to the result.
package analyzer

import (
	"os"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/config"
	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/oov"
	"github.com/sudachigo/sudachi/tokenizer"
)

// EnvDictPath overrides the configured systemDict path, for running
// against a dictionary without editing the settings file.
const EnvDictPath = "SUDACHI_DICT_PATH"

// Dictionary is an assembled analyzer: grammar, merged lexicon set and
// plugin chains, ready to hand out Tokenizer handles. It owns the
// mmap-backed system and user dictionary files and must be Close()'d
// once no Tokenizer obtained from it is in use.
type Dictionary struct {
	grammar          *dic.Grammar
	lexiconSet       *dic.LexiconSet
	inputTextPlugins []inputtext.Plugin
	oovProviders     []oov.Provider

	system *dic.Dictionary
	users  []*dic.Dictionary
}

// Setup loads configPath (resolving relative settings-file paths
// against resourceDir) and assembles the complete Dictionary: the
// system dictionary, its character-category table, the configured
// plugin chains, and every user dictionary in the settings file (each
// cost-recalculated against a bootstrap tokenizer over everything
// loaded so far, per §4.9).
func Setup(configPath, resourceDir string) (*Dictionary, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	systemPath := cfg.SystemDictPath(resourceDir)
	if p := os.Getenv(EnvDictPath); p != "" {
		systemPath = p
	}
	system, err := dic.LoadSystem(systemPath)
	if err != nil {
		return nil, err
	}

	charDefPath, err := cfg.CharacterDefinitionPath(resourceDir)
	if err != nil {
		system.Close()
		return nil, err
	}
	charDefFile, err := os.Open(charDefPath)
	if err != nil {
		system.Close()
		return nil, err
	}
	categories, err := charcategory.Read(charDefFile)
	charDefFile.Close()
	if err != nil {
		system.Close()
		return nil, err
	}
	system.Grammar.SetCharacterCategory(categories)

	lexiconSet := dic.NewLexiconSet(system.Lexicon, system.Grammar.POSSize())

	inputTextPlugins, err := cfg.BuildInputTextPlugins(resourceDir)
	if err != nil {
		system.Close()
		return nil, err
	}
	oovProviders, err := cfg.BuildOOVProviders(resourceDir, system.Grammar)
	if err != nil {
		system.Close()
		return nil, err
	}

	d := &Dictionary{
		grammar:          system.Grammar,
		lexiconSet:       lexiconSet,
		inputTextPlugins: inputTextPlugins,
		oovProviders:     oovProviders,
		system:           system,
	}

	for _, userPath := range cfg.UserDictPaths(resourceDir) {
		if err := d.addUserDictionary(userPath); err != nil {
			d.Close()
			return nil, err
		}
	}

	return d, nil
}

func (d *Dictionary) addUserDictionary(path string) error {
	user, err := dic.LoadUser(path)
	if err != nil {
		return err
	}

	bootstrap := tokenizer.New(d.grammar, d.lexiconSet, d.inputTextPlugins, d.oovProviders)
	if err := user.Lexicon.CalculateCost(bootstrap); err != nil {
		user.Close()
		return err
	}

	posBase := d.grammar.POSSize()
	if user.Grammar != nil {
		d.grammar.AddPOSList(user.Grammar)
	}
	if err := d.lexiconSet.AddUserLexicon(user.Lexicon, posBase); err != nil {
		user.Close()
		return err
	}

	d.users = append(d.users, user)
	return nil
}

// Create hands out a Tokenizer bound to this Dictionary's grammar,
// merged lexicon set and plugin chains. Any number of Tokenizers may be
// created; they share no mutable state.
func (d *Dictionary) Create() *tokenizer.Tokenizer {
	return tokenizer.New(d.grammar, d.lexiconSet, d.inputTextPlugins, d.oovProviders)
}

// Grammar returns the combined grammar backing this Dictionary.
func (d *Dictionary) Grammar() *dic.Grammar { return d.grammar }

// Close unmaps the system dictionary and every loaded user dictionary.
func (d *Dictionary) Close() error {
	var first error
	if d.system != nil {
		first = d.system.Close()
	}
	for _, u := range d.users {
		if err := u.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
