package predict_test

import (
	"context"
	"testing"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() predict.Fixture {
	return predict.Fixture{
		MatchID:     "match-42",
		HomeTeam:    "PSG",
		AwayTeam:    "OM",
		Kickoff:     time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC),
		Competition: "Ligue 1",
	}
}

func TestEnsemble_Predict(t *testing.T) {
	Convey("Given the default ensemble", t, func() {
		engine := predict.NewEnsemble()
		ctx := context.Background()

		Convey("When predicting a fixture", func() {
			p, err := engine.Predict(ctx, fixture())
			So(err, ShouldBeNil)

			Convey("Then probabilities stay inside the unit interval", func() {
				So(p.Over15Probability, ShouldBeBetweenOrEqual, 0, 1)
				So(p.Confidence, ShouldBeBetweenOrEqual, 0, 1)
			})

			Convey("Then predicted scores are non-negative", func() {
				So(p.HomeScore, ShouldBeGreaterThanOrEqualTo, 0)
				So(p.AwayScore, ShouldBeGreaterThanOrEqualTo, 0)
			})

			Convey("Then the explainability features are present", func() {
				for _, f := range []string{"team_form", "historical_performance", "player_statistics", "weather_conditions"} {
					_, ok := p.Features[f]
					So(ok, ShouldBeTrue)
				}
			})
		})

		Convey("When predicting the same fixture twice", func() {
			a, err := engine.Predict(ctx, fixture())
			So(err, ShouldBeNil)
			b, err := engine.Predict(ctx, fixture())
			So(err, ShouldBeNil)

			Convey("Then the prediction is deterministic", func() {
				So(a.HomeScore, ShouldEqual, b.HomeScore)
				So(a.AwayScore, ShouldEqual, b.AwayScore)
				So(a.Over15Probability, ShouldEqual, b.Over15Probability)
				So(a.Confidence, ShouldEqual, b.Confidence)
			})
		})
	})

	Convey("Given an ensemble with an unreachable confidence floor", t, func() {
		engine := predict.NewEnsemble(predict.WithConfidenceFloor(0.999))

		Convey("When predicting a fixture", func() {
			p, err := engine.Predict(context.Background(), fixture())
			So(err, ShouldBeNil)

			Convey("Then the fallback is served with zero confidence", func() {
				So(p.Confidence, ShouldEqual, 0)
				fb, ok := p.Features["fallback"].Bool()
				So(ok, ShouldBeTrue)
				So(fb, ShouldBeTrue)
			})
		})
	})

	Convey("Given an ensemble with an implausibly low goal cap", t, func() {
		engine := predict.NewEnsemble(predict.WithMaxGoals(0.01))

		Convey("When predicting a fixture", func() {
			p, err := engine.Predict(context.Background(), fixture())
			So(err, ShouldBeNil)

			Convey("Then the result is the fallback", func() {
				So(p.Confidence, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an ensemble with simulated inference latency", t, func() {
		engine := predict.NewEnsemble(predict.WithLatencyRange(10*time.Millisecond, 20*time.Millisecond))

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := engine.Predict(ctx, fixture())

			Convey("Then the prediction is abandoned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
