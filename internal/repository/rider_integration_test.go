//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
	"course-go-avito-dispatch/internal/repository"
)

type RiderRepositorySuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	repo       *repository.RiderRepo
	deliveries *repository.DeliveryRepo
}

func (s *RiderRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewRiderRepo(tcPool)
	s.deliveries = repository.NewDeliveryRepo(tcPool)
}

func (s *RiderRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE riders, deliveries, phone_delivery_mappings RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RiderRepositorySuite) createRider(phone string, areaID int64, kind domain.ServiceKind) int64 {
	id, err := s.repo.Create(context.Background(), &domain.Rider{
		Name:        "Rider " + phone,
		Phone:       phone,
		AreaID:      areaID,
		Status:      domain.RiderAvailable,
		ServiceKind: kind,
	})
	s.Require().NoError(err)
	return id
}

func (s *RiderRepositorySuite) TestCreateAndGetByPhone() {
	ctx := context.Background()

	id := s.createRider("+70000000001", 1, domain.KindFood)

	got, err := s.repo.GetByPhone(ctx, "+70000000001")
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(id, got.ID)
	s.Equal("+70000000001", got.Phone)
	s.Equal(int64(1), got.AreaID)
	s.Equal(domain.RiderAvailable, got.Status)
	s.Equal(domain.KindFood, got.ServiceKind)
}

func (s *RiderRepositorySuite) TestCreate_IsDublicate() {
	ctx := context.Background()

	s.createRider("+70000000001", 1, domain.KindFood)

	_, err := s.repo.Create(ctx, &domain.Rider{
		Name:        "Other",
		Phone:       "+70000000001",
		AreaID:      2,
		Status:      domain.RiderAvailable,
		ServiceKind: domain.KindGrocery,
	})
	s.ErrorIs(err, apperr.ErrConflict, "conflict for dublicate phone")
}

func (s *RiderRepositorySuite) TestGetByPhone_NotFound() {
	got, err := s.repo.GetByPhone(context.Background(), "+79999999999")
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *RiderRepositorySuite) TestListCandidates_FiltersAreaKindStatus() {
	ctx := context.Background()

	want := s.createRider("+70000000001", 1, domain.KindFood)
	s.createRider("+70000000002", 2, domain.KindFood)    // другая зона
	s.createRider("+70000000003", 1, domain.KindGrocery) // другой тип

	busyID, err := s.repo.Create(ctx, &domain.Rider{
		Name:        "Busy",
		Phone:       "+70000000004",
		AreaID:      1,
		Status:      domain.RiderBusy,
		ServiceKind: domain.KindFood,
	})
	s.Require().NoError(err)
	s.Require().Positive(busyID)

	got, err := s.repo.ListCandidates(ctx, 1, domain.KindFood)
	s.Require().NoError(err)

	s.Require().Len(got, 1)
	s.Equal(want, got[0].RiderID)
	s.Equal("+70000000001", got[0].Phone)
}

func (s *RiderRepositorySuite) TestListCandidates_LeastLoadedFirst() {
	ctx := context.Background()

	var ids []int64
	for i := 1; i <= 3; i++ {
		ids = append(ids, s.createRider(fmt.Sprintf("+7000000000%d", i), 1, domain.KindFood))
	}

	// нагружаю первого двумя доставками, второго одной
	for rider, n := range map[int64]int{ids[0]: 2, ids[1]: 1} {
		for j := 0; j < n; j++ {
			d := &domain.Delivery{AreaID: 1, ServiceKind: domain.KindFood, Status: domain.DeliveryCreated}
			s.Require().NoError(s.deliveries.Create(ctx, d))
			claimed, err := s.deliveries.MarkAssigned(ctx, d.ID, rider)
			s.Require().NoError(err)
			s.Require().True(claimed)
		}
	}

	got, err := s.repo.ListCandidates(ctx, 1, domain.KindFood)
	s.Require().NoError(err)
	s.Require().Len(got, 3)

	s.Equal(ids[2], got[0].RiderID, "idle rider first")
	s.Equal(ids[1], got[1].RiderID)
	s.Equal(ids[0], got[2].RiderID, "busiest rider last")
}

func TestRiderRepositorySuite(t *testing.T) {
	suite.Run(t, new(RiderRepositorySuite))
}
