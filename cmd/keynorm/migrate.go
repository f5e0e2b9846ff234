package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const latestConfigVersion = 1

// migration is a named config migration step.
type migration struct {
	version int
	name    string
	run     func(dir string) error
}

var migrations = []migration{
	{version: 1, name: "rename_muted_key", run: renameMutedKey},
}

// migrateConfig runs all pending migrations on the config directory and
// bumps config_version in place.
func migrateConfig(dir string) error {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return err
	}

	if cfg.ConfigVersion >= latestConfigVersion {
		fmt.Println("keynorm: config already up to date")
		return nil
	}

	for _, m := range migrations {
		if m.version <= cfg.ConfigVersion {
			continue
		}
		fmt.Printf("keynorm: running migration %d (%s)\n", m.version, m.name)
		if err := m.run(dir); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}

	configPath := filepath.Join(dir, "config.yml")
	if err := setConfigVersion(configPath, latestConfigVersion); err != nil {
		return fmt.Errorf("set config_version: %w", err)
	}

	fmt.Println("keynorm: migration complete")
	return nil
}

// setConfigVersion updates or inserts config_version in config.yml,
// preserving existing comments and formatting via yaml.Node.
func setConfigVersion(path string, version int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			content := fmt.Sprintf("config_version: %d\n", version)
			return os.WriteFile(path, []byte(content), 0644)
		}
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config.yml: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		content := fmt.Sprintf("config_version: %d\n", version)
		return os.WriteFile(path, []byte(content), 0644)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config.yml root is not a mapping")
	}

	found := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == "config_version" {
			root.Content[i+1].Value = fmt.Sprintf("%d", version)
			root.Content[i+1].Tag = "!!int"
			found = true
			break
		}
	}

	if !found {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: "config_version", Tag: "!!str"}
		valNode := &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", version), Tag: "!!int"}
		root.Content = append([]*yaml.Node{keyNode, valNode}, root.Content...)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal config.yml: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}

// renameMutedKey renames the legacy top-level "muted" key to
// "mute_keys" in config.yml, preserving comments and formatting.
func renameMutedKey(dir string) error {
	path := filepath.Join(dir, "config.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}

	renamed := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == "muted" {
			root.Content[i].Value = "mute_keys"
			renamed = true
			break
		}
	}
	if !renamed {
		fmt.Println("  skip config.yml (nothing to migrate)")
		return nil
	}

	// Back up original file.
	if err := os.WriteFile(path+".bak", data, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	fmt.Println("  migrated config.yml (renamed muted to mute_keys)")
	return nil
}
