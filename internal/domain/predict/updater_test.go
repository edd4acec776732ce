package predict_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedEvaluator returns candidate metrics shifted from the current ones.
func fixedEvaluator(accuracyGain float64) predict.Evaluator {
	return func(_ context.Context, _ model.ModelKind, _ model.Map, current predict.EvalMetrics) (predict.EvalMetrics, error) {
		return predict.EvalMetrics{
			Accuracy: current.Accuracy + accuracyGain,
			RMSE:     current.RMSE - accuracyGain,
			LogLoss:  current.LogLoss - accuracyGain,
		}, nil
	}
}

func TestUpdater_Update(t *testing.T) {
	Convey("Given an updater whose candidates clearly improve", t, func() {
		u := predict.NewUpdater(predict.WithEvaluator(fixedEvaluator(0.05)))
		ctx := context.Background()

		Convey("When updating the statistical model", func() {
			result, err := u.Update(ctx, model.ModelStatistical, nil)
			So(err, ShouldBeNil)

			Convey("Then the candidate deploys and the version steps up", func() {
				So(result.Deployed, ShouldBeTrue)
				So(result.Version, ShouldAlmostEqual, 1.1, 1e-9)
				So(u.Version(), ShouldAlmostEqual, 1.1, 1e-9)
			})

			Convey("And the deployed metrics become the new baseline", func() {
				So(u.CurrentMetrics(model.ModelStatistical).Accuracy, ShouldAlmostEqual, 0.69, 1e-9)
			})
		})

		Convey("When updating both families", func() {
			_, err := u.Update(ctx, model.ModelStatistical, nil)
			So(err, ShouldBeNil)
			_, err = u.Update(ctx, model.ModelDeepLearning, nil)
			So(err, ShouldBeNil)

			Convey("Then the version steps once per deployment", func() {
				So(u.Version(), ShouldAlmostEqual, 1.2, 1e-9)
			})
		})
	})

	Convey("Given an updater whose candidates barely move", t, func() {
		u := predict.NewUpdater(predict.WithEvaluator(fixedEvaluator(0.01)))

		Convey("When updating a model", func() {
			result, err := u.Update(context.Background(), model.ModelDeepLearning, nil)
			So(err, ShouldBeNil)

			Convey("Then the candidate is rejected and nothing changes", func() {
				So(result.Deployed, ShouldBeFalse)
				So(u.Version(), ShouldAlmostEqual, 1.0, 1e-9)
				So(u.CurrentMetrics(model.ModelDeepLearning).Accuracy, ShouldAlmostEqual, 0.67, 1e-9)
			})
		})
	})

	Convey("Given an updater whose candidates regress", t, func() {
		u := predict.NewUpdater(predict.WithEvaluator(fixedEvaluator(-0.05)))

		Convey("When updating a model", func() {
			result, err := u.Update(context.Background(), model.ModelStatistical, nil)
			So(err, ShouldBeNil)
			So(result.Deployed, ShouldBeFalse)
		})
	})

	Convey("Given an unknown model kind", t, func() {
		u := predict.NewUpdater()

		Convey("When updating", func() {
			_, err := u.Update(context.Background(), model.ModelKind("quantum"), nil)

			Convey("Then the update is refused", func() {
				So(errors.Is(err, predict.ErrUnknownModel), ShouldBeTrue)
			})
		})
	})

	Convey("Given a failing evaluator", t, func() {
		boom := errors.New("training cluster unavailable")
		u := predict.NewUpdater(predict.WithEvaluator(func(context.Context, model.ModelKind, model.Map, predict.EvalMetrics) (predict.EvalMetrics, error) {
			return predict.EvalMetrics{}, boom
		}))

		Convey("When updating", func() {
			_, err := u.Update(context.Background(), model.ModelStatistical, nil)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}
