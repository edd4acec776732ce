package contract_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abeldarick/ASDM-PRONO/internal/contract"
	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func decodeBody(t *testing.T, raw string) model.Map {
	t.Helper()
	var m model.Map
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return m
}

func TestShape_Validate(t *testing.T) {
	Convey("Given the update-models body shape", t, func() {
		shape := contract.NewShape("UpdateModelsRequest",
			contract.Literals("modelType", "statistical", "deep-learning"),
			contract.Optional("parameters", contract.KindMap),
		)

		Convey("When the enum field carries a declared literal", func() {
			err := shape.Validate(decodeBody(t, `{"modelType":"statistical"}`))

			Convey("Then validation passes", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the enum field is outside the literal set", func() {
			err := shape.Validate(decodeBody(t, `{"modelType":"quantum"}`))

			Convey("Then validation fails citing the field", func() {
				So(errors.Is(err, contract.ErrValidation), ShouldBeTrue)
				var fieldErr *contract.FieldError
				So(errors.As(err, &fieldErr), ShouldBeTrue)
				So(fieldErr.Field, ShouldEqual, "modelType")
			})
		})

		Convey("When the required field is missing", func() {
			err := shape.Validate(decodeBody(t, `{"parameters":{}}`))

			Convey("Then validation fails citing the field", func() {
				var fieldErr *contract.FieldError
				So(errors.As(err, &fieldErr), ShouldBeTrue)
				So(fieldErr.Field, ShouldEqual, "modelType")
				So(fieldErr.Reason, ShouldContainSubstring, "missing")
			})
		})

		Convey("When the optional map field is absent", func() {
			err := shape.Validate(decodeBody(t, `{"modelType":"deep-learning"}`))

			Convey("Then validation passes", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the optional map field is not an object", func() {
			err := shape.Validate(decodeBody(t, `{"modelType":"statistical","parameters":42}`))

			Convey("Then validation fails citing the field", func() {
				var fieldErr *contract.FieldError
				So(errors.As(err, &fieldErr), ShouldBeTrue)
				So(fieldErr.Field, ShouldEqual, "parameters")
			})
		})
	})

	Convey("Given a shape with every primitive kind", t, func() {
		shape := contract.NewShape("Mixed",
			contract.Required("name", contract.KindString),
			contract.Required("count", contract.KindNumber),
			contract.Required("active", contract.KindBoolean),
		)

		Convey("When all kinds match", func() {
			err := shape.Validate(decodeBody(t, `{"name":"x","count":3,"active":true}`))
			So(err, ShouldBeNil)
		})

		Convey("When a string field carries a number", func() {
			err := shape.Validate(decodeBody(t, `{"name":7,"count":3,"active":true}`))
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "name")
		})

		Convey("When a number field carries a string", func() {
			err := shape.Validate(decodeBody(t, `{"name":"x","count":"3","active":true}`))
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "count")
		})

		Convey("When a boolean field carries a string", func() {
			err := shape.Validate(decodeBody(t, `{"name":"x","count":3,"active":"yes"}`))
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "active")
		})

		Convey("When a required string field is blank", func() {
			err := shape.Validate(decodeBody(t, `{"name":"  ","count":3,"active":true}`))
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "name")
		})
	})
}

func TestShape_ValidateStrings(t *testing.T) {
	Convey("Given the matches listing query shape", t, func() {
		shape := contract.NewShape("ListMatchesQuery",
			contract.Optional("date", contract.KindString),
			contract.Optional("limit", contract.KindNumber),
			contract.Optional("offset", contract.KindNumber),
		)

		Convey("When all values parse", func() {
			err := shape.ValidateStrings(map[string]string{"date": "2025-05-01", "limit": "10", "offset": "5"})
			So(err, ShouldBeNil)
		})

		Convey("When every optional value is absent", func() {
			err := shape.ValidateStrings(map[string]string{})
			So(err, ShouldBeNil)
		})

		Convey("When a numeric value does not parse", func() {
			err := shape.ValidateStrings(map[string]string{"limit": "ten"})
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "limit")
		})
	})

	Convey("Given a params shape with a required field", t, func() {
		shape := contract.NewShape("MatchStatsParams",
			contract.Required("matchId", contract.KindString),
		)

		Convey("When the parameter is bound", func() {
			So(shape.ValidateStrings(map[string]string{"matchId": "match-42"}), ShouldBeNil)
		})

		Convey("When the parameter is missing", func() {
			err := shape.ValidateStrings(map[string]string{})
			var fieldErr *contract.FieldError
			So(errors.As(err, &fieldErr), ShouldBeTrue)
			So(fieldErr.Field, ShouldEqual, "matchId")
		})
	})
}
