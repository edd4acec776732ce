package app_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/app"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
	"github.com/abeldarick/ASDM-PRONO/internal/policy"
	"github.com/abeldarick/ASDM-PRONO/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func seedMatches() []model.Match {
	return []model.Match{
		{ID: "match-42", HomeTeam: "PSG", AwayTeam: "OM",
			Kickoff: time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC), Competition: "Ligue 1"},
		{ID: "match-43", HomeTeam: "Lyon", AwayTeam: "Lille",
			Kickoff: time.Date(2025, 5, 1, 17, 0, 0, 0, time.UTC), Competition: "Ligue 1"},
	}
}

func startedService(opts ...app.Option) *app.Service {
	svc := app.New(append([]app.Option{app.WithMatches(seedMatches()...)}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Start(t *testing.T) {
	Convey("Given a fresh service", t, func() {
		Convey("When starting with defaults", func() {
			svc := startedService()
			defer svc.Stop()

			Convey("Then the route table and policy are wired", func() {
				So(svc.Registry(), ShouldNotBeNil)
				So(len(svc.Registry().Routes()), ShouldEqual, 9)
				So(svc.Policy(), ShouldNotBeNil)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When the policy names a surface with no routes", func() {
			svc := app.New(app.WithPolicy(policy.New(policy.WithRequiredPatterns("/api/ghosts/*"))))
			err := svc.Start(context.Background())

			Convey("Then startup refuses to proceed", func() {
				So(errors.Is(err, policy.ErrDanglingPattern), ShouldBeTrue)
			})
		})
	})
}

func TestService_Predictions(t *testing.T) {
	Convey("Given a started service with seeded matches", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When predicting a stored match", func() {
			p, err := svc.PredictMatch(ctx, "match-42")
			So(err, ShouldBeNil)
			So(p.Over15Probability, ShouldBeBetweenOrEqual, 0, 1)

			Convey("Then a repeat request serves the cached prediction", func() {
				again, err := svc.PredictMatch(ctx, "match-42")
				So(err, ShouldBeNil)
				So(again, ShouldResemble, p)
			})
		})

		Convey("When predicting an unknown match", func() {
			_, err := svc.PredictMatch(ctx, "match-99")
			So(app.IsNotFound(err), ShouldBeTrue)
		})

		Convey("When asking for a day's predictions", func() {
			ms, ps, err := svc.PredictionsOn(ctx, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
			So(err, ShouldBeNil)

			Convey("Then every fixture gets a prediction", func() {
				So(len(ms), ShouldEqual, 2)
				So(len(ps), ShouldEqual, len(ms))
			})
		})

		Convey("When analyzing an ad-hoc fixture", func() {
			p, err := svc.Analyze(ctx, predict.Fixture{
				MatchID:  "friendly-1",
				HomeTeam: "France",
				AwayTeam: "Brazil",
				Kickoff:  time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC),
			})
			So(err, ShouldBeNil)
			So(p.Confidence, ShouldBeBetweenOrEqual, 0, 1)
		})
	})
}

func TestService_AccountsAndStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When a user registers and logs in", func() {
			creds, err := svc.Register(ctx, "fan@example.com", "s3cret", "Fan")
			So(err, ShouldBeNil)

			userID, err := svc.Authenticate(ctx, creds.Token)
			So(err, ShouldBeNil)
			So(userID, ShouldEqual, creds.UserID)

			again, err := svc.Login(ctx, "fan@example.com", "s3cret")
			So(err, ShouldBeNil)
			So(again.UserID, ShouldEqual, creds.UserID)
		})

		Convey("When reading the service statistics", func() {
			_, err := svc.PredictMatch(ctx, "match-42")
			So(err, ShouldBeNil)

			stats := svc.GetStats()

			Convey("Then counters and health figures are reported", func() {
				So(stats["predictionsCount"], ShouldEqual, 1)
				So(stats["accuracy"], ShouldEqual, 0.67)

				health, ok := stats["systemHealth"].(map[string]interface{})
				So(ok, ShouldBeTrue)
				So(health["started"], ShouldEqual, true)
				So(health["matchesTracked"], ShouldEqual, 2)
				So(health["cachedEntries"], ShouldEqual, 1)
				So(health["modelVersion"], ShouldEqual, 1.0)
			})
		})

		Convey("When an admin triggers a model update", func() {
			result, err := svc.UpdateModels(ctx, model.ModelStatistical, nil)
			So(err, ShouldBeNil)

			Convey("Then an outcome with metrics comes back", func() {
				So(result.Metrics.Accuracy, ShouldBeGreaterThan, 0)
			})
		})
	})
}
