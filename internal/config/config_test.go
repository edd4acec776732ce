package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abeldarick/ASDM-PRONO/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("PRONO_CONFIG", "")

		Convey("When loading without overrides", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the production defaults apply", func() {
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.RateLimitWindowMinutes, ShouldEqual, 15)
				So(cfg.RateLimitMaxRequests, ShouldEqual, 100)
				So(cfg.CORSAllowedOrigins, ShouldResemble, []string{"https://yourapp.com"})
				So(cfg.CORSAllowedMethods, ShouldResemble, []string{"GET", "POST", "PUT", "DELETE"})
				So(cfg.PredictionCacheTTLHours, ShouldEqual, 6)
				So(cfg.TokenTTLHours, ShouldEqual, 24)
				So(cfg.StatModelWeight, ShouldEqual, 0.6)
				So(cfg.DeepModelWeight, ShouldEqual, 0.4)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("PRONO_ADDR", ":7070")
			t.Setenv("PRONO_LOG_LEVEL", "debug")
			t.Setenv("PRONO_RATE_LIMIT_MAX_REQUESTS", "10")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.RateLimitMaxRequests, ShouldEqual, 10)

			Convey("Then untouched fields keep their defaults", func() {
				So(cfg.RateLimitWindowMinutes, ShouldEqual, 15)
			})
		})

		Convey("When the rate limit budget is invalid", func() {
			t.Setenv("PRONO_RATE_LIMIT_MAX_REQUESTS", "0")

			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("PRONO_CONFIG", "/definitely/not/here.yaml")

			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}
