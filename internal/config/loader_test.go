package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/ladder/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		os.Unsetenv("LADDER_CONFIG")
		os.Unsetenv("LADDER_ADDR")
		os.Unsetenv("LADDER_TAU")

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should be returned", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.Tau, ShouldEqual, 0.5)
			})
		})

		Convey("When overriding via environment", func() {
			os.Setenv("LADDER_ADDR", ":7070")
			os.Setenv("LADDER_LOG_LEVEL", "debug")
			defer os.Unsetenv("LADDER_ADDR")
			defer os.Unsetenv("LADDER_LOG_LEVEL")

			cfg, err := config.Load(context.Background())

			Convey("Then env values should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})

		Convey("When loading from a YAML file", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "ladder.yaml")
			err := os.WriteFile(path, []byte("addr: \":6060\"\ntau: 0.8\n"), 0o600)
			So(err, ShouldBeNil)
			os.Setenv("LADDER_CONFIG", path)
			defer os.Unsetenv("LADDER_CONFIG")

			cfg, err := config.Load(context.Background())

			Convey("Then file values should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.Tau, ShouldEqual, 0.8)
			})
		})

		Convey("When tau is invalid", func() {
			os.Setenv("LADDER_TAU", "-1")
			defer os.Unsetenv("LADDER_TAU")

			_, err := config.Load(context.Background())

			Convey("Then loading should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
