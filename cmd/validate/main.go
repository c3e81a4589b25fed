package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/visitor-center/pkg/narrative"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

// WorldValidator collects every problem in a world file instead of
// stopping at the first one.
type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("world file must have .yaml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.yaml, not my-world.yaml or MyWorld.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	def, err := scenario.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML unmarshaling: %w", filename, err)
	}

	return v.validate(def, filename)
}

func (v *WorldValidator) validate(def *scenario.Definition, filename string) error {
	v.errors = nil
	v.validateDefinition(def)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *WorldValidator) validateDefinition(def *scenario.Definition) {
	if def.Title == "" {
		v.addError("title is required")
	}

	locations := make(map[string]bool, len(def.Locations))
	for _, loc := range def.Locations {
		v.validateIDFormat("location ID", loc.ID)
		if loc.ID == "" {
			v.addError("location with empty ID")
			continue
		}
		if locations[loc.ID] {
			v.addError(fmt.Sprintf("duplicate location ID '%s'", loc.ID))
		}
		locations[loc.ID] = true
	}

	if def.Start == "" {
		v.addError("start location is required")
	} else if !locations[def.Start] {
		v.addError(fmt.Sprintf("start location '%s' does not exist", def.Start))
	}

	// An item lives in exactly one container, so ids are unique world-wide.
	items := make(map[string]string)
	for _, loc := range def.Locations {
		v.validateLocation(&loc, locations, items)
	}
	for _, it := range def.Spawnable {
		v.validateItem(it, "spawnable", items)
	}

	v.validateScript(&def.Script)
}

func (v *WorldValidator) validateLocation(loc *scenario.LocationSpec, locations map[string]bool, items map[string]string) {
	if loc.Name == "" {
		v.addError(fmt.Sprintf("location '%s' has no name", loc.ID))
	}

	// Exit keywords are typed by the player and may contain hyphens.
	for keyword, target := range loc.Exits {
		if strings.TrimSpace(keyword) == "" {
			v.addError(fmt.Sprintf("location '%s' has an empty exit keyword", loc.ID))
		}
		if !locations[target] {
			v.addError(fmt.Sprintf("exit '%s' in location '%s' points at unknown location '%s'", keyword, loc.ID, target))
		}
	}

	if loc.Lock != nil {
		v.validateStateName(fmt.Sprintf("lock on location '%s'", loc.ID), loc.Lock.Until)
		if loc.Lock.Message == "" {
			v.addError(fmt.Sprintf("lock on location '%s' has no message", loc.ID))
		}
	}

	for _, it := range loc.Items {
		v.validateItem(it, loc.ID, items)
	}

	elements := make(map[string]bool)
	for _, el := range loc.Elements {
		v.validateIDFormat("element name", el.Name)
		if elements[el.Name] {
			v.addError(fmt.Sprintf("duplicate element '%s' in location '%s'", el.Name, loc.ID))
		}
		elements[el.Name] = true
		if len(el.Descriptions) == 0 {
			v.addError(fmt.Sprintf("element '%s' in location '%s' has no descriptions", el.Name, loc.ID))
		}
	}
}

func (v *WorldValidator) validateItem(it scenario.Item, container string, items map[string]string) {
	v.validateIDFormat("item ID", it.ID)
	if it.ID == "" {
		v.addError(fmt.Sprintf("item with empty ID in '%s'", container))
		return
	}
	if prev, ok := items[it.ID]; ok {
		v.addError(fmt.Sprintf("item '%s' in '%s' duplicates the one in '%s'", it.ID, container, prev))
		return
	}
	items[it.ID] = container
	if it.Name == "" {
		v.addError(fmt.Sprintf("item '%s' has no name", it.ID))
	}
}

func (v *WorldValidator) validateScript(s *scenario.Script) {
	for name := range s.Beats {
		v.validateStateName("beat", name)
	}
	for name := range s.Events {
		v.validateIDFormat("event name", name)
	}
	if _, ok := s.Help["general"]; !ok {
		v.addError("help must have a 'general' topic")
	}
}

func (v *WorldValidator) validateStateName(context, name string) {
	if _, ok := narrative.ParseState(name); !ok {
		v.addError(fmt.Sprintf("%s names unknown story state '%s'", context, name))
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validIDRegex.MatchString(name)
}
