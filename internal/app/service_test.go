package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/zhuangxuhong/marathon-shoe-analysis/internal/app"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/dataset"
	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
	"github.com/zhuangxuhong/marathon-shoe-analysis/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const testDataPath = "testdata/dataset.json"

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithDataPath(testDataPath),
			service.WithFocusBrand("特步"),
			service.WithMaxCompareBrands(3),
			service.WithMaxSuggestions(4),
			service.WithMaxExportRows(1000),
			service.WithTopRankCutoff(3),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service pointed at a valid dataset", t, func() {
		svc := service.New(service.WithDataPath(testDataPath))
		ctx := context.Background()
		defer svc.Stop(ctx)

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And its stats should describe the dataset", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["records"], ShouldEqual, 32)
				So(stats["brands"], ShouldEqual, 4)
				So(stats["years"], ShouldEqual, 2)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset", t, func() {
		svc := service.New(service.WithDataPath("testdata/does_not_exist.json"))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should fail fast with a load error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, dataset.ErrLoad), ShouldBeTrue)
				So(errors.Is(err, dataset.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithDataPath(testDataPath))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop(ctx)

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And queries should report the stopped state", func() {
				_, err := svc.Overview(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_NotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithDataPath(testDataPath))
		ctx := context.Background()

		Convey("Then every query should report ErrNotStarted", func() {
			_, err := svc.Overview(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Brands(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.BrandProfile(ctx, "乔丹")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.TypeShare(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Compare(ctx, []string{"乔丹", "特步"})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Records(ctx, types.RecordQuery{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.BrandReport(ctx, "乔丹")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.SuggestBrands(ctx, "nik")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithDataPath(testDataPath))

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
			})
		})
	})
}
