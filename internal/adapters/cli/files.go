package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	craftingCommands "github.com/andrescamacho/craftreq/internal/application/crafting/commands"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

// inventoryFile is the on-disk shape of an inventory (YAML or JSON)
type inventoryFile struct {
	ID     string `yaml:"id"`
	Stacks []struct {
		Item    string `yaml:"item"`
		Units   int    `yaml:"units"`
		Charges int    `yaml:"charges"`
	} `yaml:"stacks"`
}

// actorFile is the on-disk shape of an actor (YAML or JSON)
type actorFile struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Skills map[string]struct {
		Level    int     `yaml:"level"`
		Progress float64 `yaml:"progress"`
	} `yaml:"skills"`
	Stats      map[string]int    `yaml:"stats"`
	SkillStats map[string]string `yaml:"skill_stats"`
}

// readDocument decodes a YAML or JSON file; YAML is a superset of JSON
func readDocument(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func readInventoryCommand(path, idOverride string) (*craftingCommands.ImportInventoryCommand, error) {
	var f inventoryFile
	if err := readDocument(path, &f); err != nil {
		return nil, err
	}
	cmd := &craftingCommands.ImportInventoryCommand{InventoryID: f.ID}
	if idOverride != "" {
		cmd.InventoryID = idOverride
	}
	for _, s := range f.Stacks {
		cmd.Stacks = append(cmd.Stacks, inventory.Stack{Type: s.Item, Units: s.Units, Charges: s.Charges})
	}
	return cmd, nil
}

func readActorCommand(path string) (*craftingCommands.RegisterActorCommand, error) {
	var f actorFile
	if err := readDocument(path, &f); err != nil {
		return nil, err
	}
	cmd := &craftingCommands.RegisterActorCommand{
		ID:         f.ID,
		Name:       f.Name,
		Skills:     make(map[string]actor.SkillProgress, len(f.Skills)),
		Stats:      f.Stats,
		SkillStats: f.SkillStats,
	}
	for skill, p := range f.Skills {
		cmd.Skills[skill] = actor.SkillProgress{Level: p.Level, Progress: p.Progress}
	}
	return cmd, nil
}
