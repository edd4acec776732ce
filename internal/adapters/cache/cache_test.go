package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/adapters/cache"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPredictionCache(t *testing.T) {
	Convey("Given an empty prediction cache", t, func() {
		c := cache.New()
		ctx := context.Background()

		Convey("When asking for a match that was never predicted", func() {
			_, ok := c.Get(ctx, "match-42")
			So(ok, ShouldBeFalse)
		})

		Convey("When a prediction is stored", func() {
			p := model.Prediction{Over15Probability: 0.62, Confidence: 0.81}
			c.Put(ctx, "match-42", p)

			Convey("Then it is served back intact", func() {
				got, ok := c.Get(ctx, "match-42")
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, p)
				So(c.Len(), ShouldEqual, 1)
			})

			Convey("Then other matches stay unaffected", func() {
				_, ok := c.Get(ctx, "match-43")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a cache with a very short TTL", t, func() {
		c := cache.New(cache.WithTTL(20 * time.Millisecond))
		ctx := context.Background()
		c.Put(ctx, "match-42", model.Prediction{Confidence: 0.7})

		Convey("When the TTL elapses", func() {
			time.Sleep(40 * time.Millisecond)

			Convey("Then the entry is gone", func() {
				_, ok := c.Get(ctx, "match-42")
				So(ok, ShouldBeFalse)
			})
		})
	})
}
