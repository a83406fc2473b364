package base

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/caffeine-storm/isoroom/logging"
)

// Defs loaded from the data directory follow this layout
//   type Foo struct {
//     Defname string
//     *FooDef
//     FooInst
//   }
// A Foo is something for which there can be many instances (a chair placed
// twice in a room), FooDef is the data shared by all of them and FooInst is
// what makes each instance unique (position, facing).
//
// Registries are maps of the form
//   foo_registry map[string]*FooDef
// keyed by FooDef.Name, so a Foo can be filled in from its Defname alone.
//
// Registries can be swapped out while readers are using them (the furniture
// watcher reloads a directory whenever it changes) so every access goes
// through registry_mutex.

var ErrUnknownRegistry = errors.New("unknown registry")
var ErrUnknownObject = errors.New("no object with that name")

var (
	registry_mutex    sync.RWMutex
	registry_registry map[string]reflect.Value
)

func init() {
	registry_registry = make(map[string]reflect.Value)
}

func RemoveRegistry(name string) {
	registry_mutex.Lock()
	defer registry_mutex.Unlock()
	delete(registry_registry, name)
}

// Registers a registry which must be a map from string to
// pointer-to-struct-with-a-Name-field.
func RegisterRegistry(name string, registry interface{}) {
	registry_mutex.Lock()
	defer registry_mutex.Unlock()
	registerRegistry(name, reflect.ValueOf(registry))
}

// Replaces the named registry in one step so that readers never observe a
// missing or half-loaded registry.
func ReplaceRegistry(name string, registry interface{}) {
	registry_mutex.Lock()
	defer registry_mutex.Unlock()
	delete(registry_registry, name)
	registerRegistry(name, reflect.ValueOf(registry))
}

func registerRegistry(name string, mr reflect.Value) {
	if strings.Contains(name, " ") {
		logging.Error("Registry name cannot contain spaces", "name", name)
		return
	}
	if mr.Kind() != reflect.Map {
		logging.Error("Registries must be map[string]*struct", "actualkind", mr.Kind())
		return
	}
	if mr.Type().Key().Kind() != reflect.String {
		logging.Error("Registry must be a map that uses strings as keys", "actualtype", mr.Type().Key())
		return
	}
	if mr.Type().Elem().Kind() != reflect.Pointer {
		logging.Error("Registry must be a map that uses pointers as values", "actualtype", mr.Type().Elem())
		return
	}
	if field, ok := mr.Type().Elem().Elem().FieldByName("Name"); !ok || field.Type.Kind() != reflect.String {
		logging.Error("Registry must store values that have a Name field of type string")
		return
	}
	if _, ok := registry_registry[name]; ok {
		logging.Error("Cannot register two registries with the same name", "name", name)
		return
	}
	registry_registry[name] = mr
}

// Registers object in the named registry which must have already been
// registered through RegisterRegistry(). object must be a pointer of the type
// appropriate for the named registry.
func RegisterObject(registry_name string, object interface{}) error {
	registry_mutex.Lock()
	defer registry_mutex.Unlock()
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("RegisterObject(%q): %w", registry_name, ErrUnknownRegistry)
	}
	return registerObject(reg, registry_name, reflect.ValueOf(object))
}

func registerObject(reg reflect.Value, registry_name string, obj_val reflect.Value) error {
	if obj_val.Kind() != reflect.Pointer {
		return fmt.Errorf("can only register objects as pointers, got %v", obj_val.Kind())
	}
	if obj_val.Elem().Type() != reg.Type().Elem().Elem() {
		return fmt.Errorf("registry %q stores %v, got %v", registry_name, reg.Type().Elem().Elem(), obj_val.Elem().Type())
	}

	// Registries can only exist if they store values with a Name field of type
	// string so there is no need to check for one here.
	object_name := obj_val.Elem().FieldByName("Name").String()
	if reg.MapIndex(reflect.ValueOf(object_name)).IsValid() {
		logging.Warn("Registry entry name collision, keeping the newest", "object_name", object_name, "registry_name", registry_name)
	}
	reg.SetMapIndex(reflect.ValueOf(object_name), obj_val)
	return nil
}

// Fills in a def-embedding object from the named registry. object must be a
// pointer to a struct with a Defname field of type string and an exported
// embedded pointer to the registry's value type. The embedded pointer is
// assigned the registry entry named by Defname.
func GetObject(registry_name string, object interface{}) error {
	registry_mutex.RLock()
	defer registry_mutex.RUnlock()
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("GetObject(%q): %w", registry_name, ErrUnknownRegistry)
	}

	object_val := reflect.ValueOf(object)
	if object_val.Kind() != reflect.Pointer {
		panic(fmt.Errorf("tried to load into a value that was not a pointer: %v", object_val.Kind()))
	}

	object_name := object_val.Elem().FieldByName("Defname")
	if !object_name.IsValid() || object_name.Kind() != reflect.String {
		panic(fmt.Errorf("%v is missing a Defname field", object_val.Elem().Type()))
	}

	cur_val := reg.MapIndex(object_name)
	if !cur_val.IsValid() {
		return fmt.Errorf("GetObject(%q, %q): %w", registry_name, object_name.String(), ErrUnknownObject)
	}
	fieldName := cur_val.Elem().Type().Name()
	field := object_val.Elem().FieldByName(fieldName)
	if !field.IsValid() {
		panic(fmt.Errorf("%v has no embedded %v", object_val.Elem().Type(), cur_val.Type()))
	}
	if !field.CanSet() {
		panic(fmt.Errorf("can't set value through field named %q", fieldName))
	}
	field.Set(cur_val)
	return nil
}

// Returns a sorted list of all names in the specified registry.
func GetAllNamesInRegistry(registry_name string) []string {
	registry_mutex.RLock()
	defer registry_mutex.RUnlock()
	reg, ok := registry_registry[registry_name]
	if !ok {
		logging.Error("Unknown registry", "registry_name", registry_name)
		return nil
	}
	var names []string
	for _, key := range reg.MapKeys() {
		names = append(names, key.String())
	}
	sort.Strings(names)
	return names
}

// Walks recursively through dir and decodes every json file ending in suffix
// into a fresh value of the registry's type. The decoded objects replace the
// named registry wholesale. Files and directories beginning with '.' are
// ignored. Files that fail to decode are logged and skipped.
func LoadRegistryFromDir(registry_name string, registry interface{}, dir, suffix string) error {
	logging.Info("Registering directory", "dir", dir, "registry", registry_name)
	mr := reflect.ValueOf(registry)
	if mr.Kind() != reflect.Map || mr.Type().Elem().Kind() != reflect.Pointer {
		return fmt.Errorf("registry %q must be a map[string]*struct, got %T", registry_name, registry)
	}

	loaded := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("error walking directory: %w", err)
		}
		_, filename := filepath.Split(path)
		if path != dir && strings.HasPrefix(filename, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(filename, suffix) {
			return nil
		}
		target := reflect.New(mr.Type().Elem().Elem())
		if err := LoadJson(path, target.Interface()); err != nil {
			logging.Error("Error loading file", "path", path, "err", err)
			return nil
		}
		if err := registerObject(mr, registry_name, target); err != nil {
			return err
		}
		loaded++
		return nil
	})
	if err != nil {
		return err
	}

	ReplaceRegistry(registry_name, registry)
	logging.Info("Completed directory", "dir", dir, "loaded", loaded)
	return nil
}
