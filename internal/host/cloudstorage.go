package host

import (
	"context"
	"fmt"
)

// CloudStorageController wraps the host key-value store.
type CloudStorageController struct {
	api CloudStorageAPI
}

// NewCloudStorage returns a storage controller, or nil when the host has
// no store. A nil controller means persistence is unavailable, which is
// a valid state and not an error.
func NewCloudStorage(caps Capabilities, b Bridge) *CloudStorageController {
	if !caps.HasCloudStorage || b == nil || b.CloudStorage() == nil {
		return nil
	}
	return &CloudStorageController{api: b.CloudStorage()}
}

// Get reads a value; a missing key yields an empty string.
func (c *CloudStorageController) Get(ctx context.Context, key string) (string, error) {
	v, err := c.api.GetItem(ctx, key)
	if err != nil {
		return "", fmt.Errorf("cloud storage get %q: %w", key, err)
	}
	return v, nil
}

// Set stores a value under key.
func (c *CloudStorageController) Set(ctx context.Context, key, value string) error {
	if err := c.api.SetItem(ctx, key, value); err != nil {
		return fmt.Errorf("cloud storage set %q: %w", key, err)
	}
	return nil
}

// Remove deletes a key.
func (c *CloudStorageController) Remove(ctx context.Context, key string) error {
	if err := c.api.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("cloud storage remove %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys.
func (c *CloudStorageController) Keys(ctx context.Context) ([]string, error) {
	keys, err := c.api.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloud storage keys: %w", err)
	}
	return keys, nil
}
