package sheets_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
)

func TestMockDeleteRows(t *testing.T) {
	ctx := context.Background()
	mock := sheets.NewMock("Standups")
	mock.SetRows("Standups", [][]string{
		{"header"},
		{"2025-04-01_u1"},
		{"2025-04-01_u2"},
		{"2025-04-02_u1"},
	})

	tabs, err := mock.ListTabs(ctx, "sheet")
	gt.NoError(t, err).Required()
	gt.A(t, tabs).Length(1)

	gt.NoError(t, mock.DeleteRows(ctx, "sheet", tabs[0].ID, []int64{1, 2}))

	rows := mock.Rows("Standups")
	gt.A(t, rows).Length(2)
	gt.V(t, rows[0][0]).Equal("header")
	gt.V(t, rows[1][0]).Equal("2025-04-02_u1")
}

func TestMockAppendAndGetValues(t *testing.T) {
	ctx := context.Background()
	mock := sheets.NewMock("Learning Hours")

	n, err := mock.AppendRows(ctx, "sheet", "'Learning Hours'!A:H", [][]any{
		{"2025-04-01_u1", "09:30 AM", "learning_hours"},
		{"2025-04-01_u2", "09:30 AM", "learning_hours"},
	})
	gt.NoError(t, err).Required()
	gt.V(t, n).Equal(2)

	values, err := mock.GetValues(ctx, "sheet", "'Learning Hours'!A:A")
	gt.NoError(t, err).Required()
	gt.A(t, values).Length(2)
	gt.V(t, values[0][0]).Equal("2025-04-01_u1")
}

func TestMockUnknownTab(t *testing.T) {
	ctx := context.Background()
	mock := sheets.NewMock()

	_, err := mock.GetValues(ctx, "sheet", "'Nope'!A:A")
	gt.Error(t, err)
}
