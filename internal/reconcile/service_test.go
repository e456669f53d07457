package reconcile_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cuotas/internal/expense"
	"github.com/MrJamesThe3rd/cuotas/internal/reconcile"
)

func TestService_Import(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(a *reconcile.MockApplier)
		wantErr   string
		wantCount int
	}

	valid := "payment_id;status\n" + first.String() + ";paid\n" + second.String() + ";confirmed\n"

	tests := []testCase{
		{
			name:  "Success",
			input: valid,
			setupMock: func(a *reconcile.MockApplier) {
				a.EXPECT().
					ApplyEvents(gomock.Any(), gomock.Len(2)).
					DoAndReturn(func(_ context.Context, updates []expense.PaymentUpdate) (expense.ApplyResult, error) {
						assert.Equal(t, first, updates[0].PaymentID)
						return expense.ApplyResult{Applied: []expense.Applied{{PaymentID: first}, {PaymentID: second}}}, nil
					})
			},
			wantCount: 2,
		},
		{
			name:    "MalformedFileAppliesNothing",
			input:   "payment_id;status\n" + first.String() + ";lost\n",
			wantErr: "parsing events",
		},
		{
			name:  "ApplierError",
			input: valid,
			setupMock: func(a *reconcile.MockApplier) {
				a.EXPECT().ApplyEvents(gomock.Any(), gomock.Any()).Return(expense.ApplyResult{}, errors.New("context canceled"))
			},
			wantErr: "applying events: context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			applier := reconcile.NewMockApplier(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(applier)
			}

			svc := reconcile.NewService(reconcile.NewParser(0), applier)

			res, err := svc.Import(context.Background(), strings.NewReader(tt.input))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Applied, tt.wantCount)
		})
	}
}
