package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cuotas/internal/category"
	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

func TestNewCategory(t *testing.T) {
	owner := uuid.New()

	c, err := category.NewCategory(owner, "  Groceries ", "food and home", false)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", c.Name)
	assert.Equal(t, owner, c.OwnerID)

	_, err = category.NewCategory(owner, " ", "", false)
	assert.ErrorIs(t, err, validation.ErrInvalid)

	assert.ErrorIs(t, c.SetName(""), validation.ErrInvalid)
	assert.Equal(t, "Groceries", c.Name)
}

func TestCategory_MapRoundTrip(t *testing.T) {
	c, err := category.NewCategory(uuid.New(), "Salary", "monthly", true)
	require.NoError(t, err)

	got, err := category.FromMap(c.ToMap())
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = category.FromMap(map[string]any{"id": uuid.NewString(), "name": ""})
	assert.Error(t, err)
}

func TestService_Rename(t *testing.T) {
	type testCase struct {
		name      string
		newName   string
		setupMock func(m *category.MockRepository, c *category.Category)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Success",
			newName: "Food",
			setupMock: func(m *category.MockRepository, c *category.Category) {
				m.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil)
				m.EXPECT().Save(gomock.Any(), c).Return(nil)
			},
		},
		{
			name:    "EmptyName",
			newName: "",
			setupMock: func(m *category.MockRepository, c *category.Category) {
				m.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil)
			},
			wantErr: validation.ErrInvalid,
		},
		{
			name:    "NotFound",
			newName: "Food",
			setupMock: func(m *category.MockRepository, c *category.Category) {
				m.EXPECT().GetByID(gomock.Any(), c.ID).Return(nil, category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c, err := category.NewCategory(uuid.New(), "Groceries", "", false)
			require.NoError(t, err)

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo, c)

			got, err := category.NewService(repo).Rename(context.Background(), c.ID, tt.newName)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Food", got.Name)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	repo := category.NewMockRepository(ctrl)
	svc := category.NewService(repo)

	repo.EXPECT().GetByOwnerID(gomock.Any(), owner, 1, 20).Return(pagination.NewPage[*category.Category](nil, 0, 1, 20), nil)
	repo.EXPECT().GetByIncomeType(gomock.Any(), owner, true, 1, 20).Return(pagination.NewPage[*category.Category](nil, 0, 1, 20), nil)

	_, err := svc.List(context.Background(), owner, nil, 1, 20)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), owner, new(true), 1, 20)
	require.NoError(t, err)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	got, err := category.NewService(repo).Create(context.Background(), uuid.New(), "Travel", "", false)
	assert.Error(t, err)
	assert.Nil(t, got)
}
