package api

import (
	"testing"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/policy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRateLimiter_Allow(t *testing.T) {
	Convey("Given a limiter with a three-request window", t, func() {
		limiter := newRateLimiter(policy.New(policy.WithRateLimit(time.Minute, 3)))
		start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

		Convey("When a client spends its budget", func() {
			for i := 0; i < 3; i++ {
				ok, _ := limiter.Allow("1.2.3.4", start.Add(time.Duration(i)*time.Second))
				So(ok, ShouldBeTrue)
			}

			Convey("Then the next request inside the window is refused", func() {
				ok, retryAfter := limiter.Allow("1.2.3.4", start.Add(10*time.Second))
				So(ok, ShouldBeFalse)

				Convey("And the retry hint points at the window reset", func() {
					So(retryAfter, ShouldEqual, 50*time.Second)
				})
			})

			Convey("Then another client keeps its own budget", func() {
				ok, _ := limiter.Allow("5.6.7.8", start.Add(10*time.Second))
				So(ok, ShouldBeTrue)
			})

			Convey("Then a new window resets the counter", func() {
				ok, _ := limiter.Allow("1.2.3.4", start.Add(time.Minute))
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When old windows fall out of scope", func() {
			limiter.Allow("1.2.3.4", start)
			limiter.Allow("5.6.7.8", start.Add(2*time.Minute))

			Convey("Then stale windows are evicted on rollover", func() {
				limiter.mu.Lock()
				_, stale := limiter.windows["1.2.3.4"]
				limiter.mu.Unlock()
				So(stale, ShouldBeFalse)
			})
		})
	})
}
