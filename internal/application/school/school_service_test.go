package school

import (
	"context"
	"testing"

	"github.com/dormlife/backend/internal/domain/school"
	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/dormlife/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== Mock Repositories ====================

type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) Save(ctx context.Context, s *school.School) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSchoolRepository) Update(ctx context.Context, s *school.School) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*school.School, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*school.School), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSchoolRepository) FindAll(ctx context.Context) ([]school.School, error) {
	args := m.Called(ctx)
	schools, _ := args.Get(0).([]school.School)
	return schools, args.Error(1)
}

func (m *MockSchoolRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchoolRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSchoolRepository) GetStats(ctx context.Context, schoolID uuid.UUID) (*school.Stats, error) {
	args := m.Called(ctx, schoolID)
	if s := args.Get(0); s != nil {
		return s.(*school.Stats), args.Error(1)
	}
	return nil, args.Error(1)
}

// ==================== Helpers ====================

func newSchoolService(t *testing.T) (*SchoolService, *MockSchoolRepository) {
	t.Helper()
	repo := new(MockSchoolRepository)
	return NewSchoolService(repo, cache.NewInMemoryStatsCache(), zap.NewNop()), repo
}

func existingSchool(t *testing.T, name string) *school.School {
	t.Helper()
	s, err := school.NewSchool(name, "1 Campus Drive", "America/New_York")
	require.NoError(t, err)
	return s
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// ==================== Tests ====================

func TestCreateSchool(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a school", func(t *testing.T) {
		svc, repo := newSchoolService(t)
		repo.On("ExistsByName", ctx, "Maple Hall").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*school.School")).Return(nil)

		info, err := svc.Create(ctx, CreateSchoolInput{
			Name:     "Maple Hall",
			Address:  "1 Campus Drive",
			Timezone: "America/New_York",
			LogoURL:  "https://cdn.example.com/maple.png",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maple Hall", info.Name)
		assert.Equal(t, "https://cdn.example.com/maple.png", info.LogoURL)
	})

	t.Run("taken name is rejected before saving", func(t *testing.T) {
		svc, repo := newSchoolService(t)
		repo.On("ExistsByName", ctx, "Maple Hall").Return(true, nil)

		_, err := svc.Create(ctx, CreateSchoolInput{Name: "Maple Hall"})

		assert.ErrorIs(t, err, school.ErrDuplicateName)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUpdateSchool(t *testing.T) {
	ctx := context.Background()

	t.Run("applies a partial update", func(t *testing.T) {
		svc, repo := newSchoolService(t)
		s := existingSchool(t, "Maple Hall")
		repo.On("UpdateFields", ctx, s.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasName := fields["name"]
			return fields["address"] == "2 Campus Drive" && !hasName
		})).Return(nil)
		repo.On("FindByID", ctx, s.ID).Return(s, nil)

		address := "2 Campus Drive"
		_, err := svc.Update(ctx, s.ID, UpdateSchoolInput{Address: &address})

		require.NoError(t, err)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc, _ := newSchoolService(t)
		name := ""

		_, err := svc.Update(ctx, uuid.New(), UpdateSchoolInput{Name: &name})

		assert.Equal(t, "INVALID_NAME", domainCode(t, err))
	})

	t.Run("unknown timezone is rejected", func(t *testing.T) {
		svc, _ := newSchoolService(t)
		tz := "Mars/Olympus_Mons"

		_, err := svc.Update(ctx, uuid.New(), UpdateSchoolInput{Timezone: &tz})

		assert.Equal(t, "INVALID_TIMEZONE", domainCode(t, err))
	})

	t.Run("no fields is rejected", func(t *testing.T) {
		svc, repo := newSchoolService(t)

		_, err := svc.Update(ctx, uuid.New(), UpdateSchoolInput{})

		assert.Equal(t, "NO_FIELDS_TO_UPDATE", domainCode(t, err))
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetSchoolStats(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches stats", func(t *testing.T) {
		svc, repo := newSchoolService(t)
		s := existingSchool(t, "Maple Hall")
		avg := 71.5
		stats := &school.Stats{TotalUsers: 12, TotalRequests: 4, ActiveRequests: 2, AverageVote7Day: &avg}

		repo.On("FindByID", ctx, s.ID).Return(s, nil).Once()
		repo.On("GetStats", ctx, s.ID).Return(stats, nil).Once()

		got, err := svc.GetStats(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalUsers)

		// Second read is served from the cache
		got, err = svc.GetStats(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalUsers)
		repo.AssertNumberOfCalls(t, "GetStats", 1)
	})

	t.Run("unknown school is not found", func(t *testing.T) {
		svc, repo := newSchoolService(t)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetStats(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
	})
}
