package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caffeine-storm/isoroom/house"
	"gopkg.in/yaml.v3"
)

type FmterType int

const (
	IgnoreFmter FmterType = iota
	JsonFmter
	YamlFmter
)

var extensionToFmter = map[string]FmterType{
	"":     IgnoreFmter,
	".log": IgnoreFmter,
	".md":  IgnoreFmter,
	".txt": IgnoreFmter,

	".json": JsonFmter, // furniture defs
	".yaml": YamlFmter, // rooms
	".yml":  YamlFmter,
}

func getCheckFlag(flagname string) bool {
	for idx, arg := range os.Args[1:] {
		if arg == flagname {
			copy(os.Args[idx+1:], os.Args[idx+2:])
			os.Args = os.Args[:len(os.Args)-1]
			return true
		}
	}

	return false
}

// Returns an error if something went wrong. Returns true if the formatter
// suggests/has-applied changes.
type Fmter func(string) (bool, error)

func nopfmter(string) (bool, error) {
	return false, nil
}

// Writes formatted over path unless readOnly or unchanged.
func rewrite(path string, contents, formatted []byte, readOnly bool) (bool, error) {
	if len(formatted) > 0 && formatted[len(formatted)-1] != '\n' {
		formatted = append(formatted, '\n')
	}

	diff := !bytes.Equal(contents, formatted)
	if readOnly || !diff {
		return diff, nil
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return diff, fmt.Errorf("couldn't rewrite %q: %w", path, err)
	}
	return diff, nil
}

// Furniture defs must decode into a FurnitureDef with a name and a footprint.
func jsonfmt(readOnly bool) Fmter {
	return func(path string) (bool, error) {
		contents, err := os.ReadFile(path)
		if err != nil {
			return false, err
		}

		var def house.FurnitureDef
		if err := json.Unmarshal(contents, &def); err != nil {
			return false, fmt.Errorf("%q is not a furniture def: %w", path, err)
		}
		if def.Name == "" || def.X_dim <= 0 || def.Y_dim <= 0 {
			return false, fmt.Errorf("%q: furniture needs a Name and a positive footprint", path)
		}

		var v any
		if err := json.Unmarshal(contents, &v); err != nil {
			return false, err
		}
		formatted, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return false, fmt.Errorf("couldn't json.MarshalIndent %q: %w", path, err)
		}
		return rewrite(path, contents, formatted, readOnly)
	}
}

// Rooms must have a tilemap that parses. Going through a yaml.Node keeps
// comments and key order.
func yamlfmt(readOnly bool) Fmter {
	return func(path string) (bool, error) {
		contents, err := os.ReadFile(path)
		if err != nil {
			return false, err
		}

		rf, err := house.ParseRoomFile(contents)
		if err != nil {
			return false, fmt.Errorf("%q: %w", path, err)
		}
		if _, err := house.ParseTilemap(rf.Tilemap); err != nil {
			return false, fmt.Errorf("%q: %w", path, err)
		}

		var node yaml.Node
		if err := yaml.Unmarshal(contents, &node); err != nil {
			return false, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return false, fmt.Errorf("couldn't re-encode %q: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return false, err
		}
		return rewrite(path, contents, buf.Bytes(), readOnly)
	}
}

func getfmter(tp FmterType, readOnly bool) Fmter {
	switch tp {
	case IgnoreFmter:
		return nopfmter
	case JsonFmter:
		return jsonfmt(readOnly)
	case YamlFmter:
		return yamlfmt(readOnly)
	default:
		panic(fmt.Errorf("unknown FmterType: %v", tp))
	}
}

// like 'go fmt' but for things under 'data/'
func main() {
	readOnly := getCheckFlag("--check")

	ok := true
	for _, arg := range os.Args[1:] {
		ok = processFile(arg, readOnly) && ok
	}

	if !ok {
		os.Exit(1)
	}
}

func processFile(targetPath string, readOnly bool) bool {
	ext := filepath.Ext(targetPath)
	fmterType, found := extensionToFmter[ext]
	if !found {
		fmt.Fprintf(os.Stderr, "unknown extension(%s) for file %q\n", ext, targetPath)
		return false
	}

	if fmterType == IgnoreFmter {
		return true
	}

	fmter := getfmter(fmterType, readOnly)

	changeWanted, err := fmter(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	if changeWanted {
		fmt.Printf("%s\n", targetPath)

		if readOnly {
			return false
		}
	}

	return true
}
