package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "data/marathon_shoes.json")
				convey.So(cfg.FocusBrand, convey.ShouldEqual, "乔丹")
				convey.So(cfg.MaxCompareBrands, convey.ShouldEqual, 5)
				convey.So(cfg.MaxSuggestions, convey.ShouldEqual, 8)
				convey.So(cfg.MaxExportRows, convey.ShouldEqual, 100_000)
				convey.So(cfg.TopRankCutoff, convey.ShouldEqual, 10)
				convey.So(cfg.DomesticBrands, convey.ShouldContain, "特步")
				convey.So(cfg.InternationalBrands, convey.ShouldContain, "Nike")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MARATHON_ADDR", ":8080")
			_ = os.Setenv("MARATHON_DATA_PATH", "/tmp/shoes.json")
			_ = os.Setenv("MARATHON_FOCUS_BRAND", "特步")
			_ = os.Setenv("MARATHON_MAX_COMPARE_BRANDS", "8")
			_ = os.Setenv("MARATHON_TOP_RANK_CUTOFF", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/shoes.json")
				convey.So(cfg.FocusBrand, convey.ShouldEqual, "特步")
				convey.So(cfg.MaxCompareBrands, convey.ShouldEqual, 8)
				convey.So(cfg.TopRankCutoff, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading brand lists from environment variables", func() {
			_ = os.Setenv("MARATHON_DOMESTIC_BRANDS", "特步,李宁")
			_ = os.Setenv("MARATHON_INTERNATIONAL_BRANDS", "Nike,ASICS")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then comma-separated values should become slices", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DomesticBrands, convey.ShouldResemble, []string{"特步", "李宁"})
				convey.So(cfg.InternationalBrands, convey.ShouldResemble, []string{"Nike", "ASICS"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
data_path: "testdata/sample.json"
focus_brand: "李宁"
max_compare_brands: 4
max_suggestions: 3
domestic_brands:
  - 特步
  - 李宁
  - 安踏
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARATHON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "testdata/sample.json")
				convey.So(cfg.FocusBrand, convey.ShouldEqual, "李宁")
				convey.So(cfg.MaxCompareBrands, convey.ShouldEqual, 4)
				convey.So(cfg.MaxSuggestions, convey.ShouldEqual, 3)
				convey.So(cfg.DomesticBrands, convey.ShouldResemble, []string{"特步", "李宁", "安踏"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
data_path: "testdata/sample.json"
max_compare_brands: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARATHON_CONFIG", tmpFile)
			_ = os.Setenv("MARATHON_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")                       // Overridden by env
				convey.So(cfg.DataPath, convey.ShouldEqual, "testdata/sample.json")    // From file
				convey.So(cfg.MaxCompareBrands, convey.ShouldEqual, 4)                 // From file
				convey.So(cfg.MaxExportRows, convey.ShouldEqual, 100_000)              // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARATHON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MARATHON_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MARATHON_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
addr: ":9090"
max_suggestions: 3
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARATHON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")                          // From file
				convey.So(cfg.MaxSuggestions, convey.ShouldEqual, 3)                      // From file
				convey.So(cfg.DataPath, convey.ShouldEqual, "data/marathon_shoes.json")   // From defaults
				convey.So(cfg.FocusBrand, convey.ShouldEqual, "乔丹")                      // From defaults
				convey.So(cfg.TopRankCutoff, convey.ShouldEqual, 10)                      // From defaults
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MARATHON_MAX_COMPARE_BRANDS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When the compare cap is below the allowed minimum", func() {
			_ = os.Setenv("MARATHON_MAX_COMPARE_BRANDS", "1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the compare cap is above the allowed maximum", func() {
			_ = os.Setenv("MARATHON_MAX_COMPARE_BRANDS", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the top rank cutoff is negative", func() {
			_ = os.Setenv("MARATHON_TOP_RANK_CUTOFF", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with various addr formats", func() {
			_ = os.Setenv("MARATHON_ADDR", "[::1]:8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should accept the address as-is", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "[::1]:8080")
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# Service binding
addr: ":9090"  # Inline comment
# Dataset location
data_path: "testdata/sample.json"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MARATHON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "testdata/sample.json")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MARATHON_CONFIG",
		"MARATHON_ADDR",
		"MARATHON_LOG_LEVEL",
		"MARATHON_DATA_PATH",
		"MARATHON_FOCUS_BRAND",
		"MARATHON_DOMESTIC_BRANDS",
		"MARATHON_INTERNATIONAL_BRANDS",
		"MARATHON_MAX_COMPARE_BRANDS",
		"MARATHON_MAX_SUGGESTIONS",
		"MARATHON_MAX_EXPORT_ROWS",
		"MARATHON_TOP_RANK_CUTOFF",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "marathon-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
