package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mcoot/santaworkshop/internal/model"
)

// DefaultNamespace prefixes every persisted key
const DefaultNamespace = "santa"

// Keys builds the persisted key names for a namespace.
// Per-profile keys follow the <namespace>_<field>_<profile> layout.
type Keys struct {
	Namespace string
}

// NewKeys returns key helpers for a namespace, falling back to the default
func NewKeys(namespace string) Keys {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Keys{Namespace: namespace}
}

// Profiles returns the key holding the JSON list of profile names
func (k Keys) Profiles() string {
	return fmt.Sprintf("%s_users", k.Namespace)
}

// Active returns the key holding the active profile name
func (k Keys) Active() string {
	return fmt.Sprintf("%s_current_user", k.Namespace)
}

// Points returns the key holding a profile's balance
func (k Keys) Points(profile model.ProfileName) string {
	return fmt.Sprintf("%s_points_%s", k.Namespace, profile)
}

// Inventory returns the key holding a profile's JSON inventory
func (k Keys) Inventory(profile model.ProfileName) string {
	return fmt.Sprintf("%s_inventory_%s", k.Namespace, profile)
}

// EncodePoints serializes a balance as a decimal string
func EncodePoints(points int) string {
	return strconv.Itoa(points)
}

// DecodePoints parses a stored balance. Corrupt or negative values read as zero.
func DecodePoints(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// EncodeInventory serializes an inventory as a JSON array
func EncodeInventory(items []model.ItemID) (string, error) {
	if items == nil {
		items = []model.ItemID{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeInventory parses a stored inventory, dropping duplicate ids
func DecodeInventory(s string) ([]model.ItemID, error) {
	var items []model.ItemID
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	seen := make(map[model.ItemID]bool, len(items))
	result := make([]model.ItemID, 0, len(items))
	for _, id := range items {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result, nil
}

// EncodeProfiles serializes the profile roster as a JSON array
func EncodeProfiles(profiles []model.ProfileName) (string, error) {
	if profiles == nil {
		profiles = []model.ProfileName{}
	}
	data, err := json.Marshal(profiles)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeProfiles parses a stored profile roster
func DecodeProfiles(s string) ([]model.ProfileName, error) {
	var profiles []model.ProfileName
	if err := json.Unmarshal([]byte(s), &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if profiles == nil {
		profiles = []model.ProfileName{}
	}
	return profiles, nil
}
