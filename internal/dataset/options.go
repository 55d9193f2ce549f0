package dataset

import model "github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/model"

// loadConfig carries the tunable parts of a Load call.
type loadConfig struct {
	fallbackType model.BrandType
}

func newLoadConfig() *loadConfig {
	return &loadConfig{
		fallbackType: model.Other,
	}
}

// Option applies a configuration option to a Load call.
type Option func(*loadConfig)

// WithFallbackType sets the brand type joined onto observations whose
// brand has no metadata entry. The default is Other.
func WithFallbackType(t model.BrandType) Option {
	return func(c *loadConfig) {
		if t != "" {
			c.fallbackType = t
		}
	}
}
