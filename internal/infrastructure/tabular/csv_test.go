package tabular_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/tabular"
)

const header = "RevolvingUtilizationOfUnsecuredLines,age,NumberOfTime30-59DaysPastDueNotWorse,DebtRatio,MonthlyIncome," +
	"NumberOfOpenCreditLinesAndLoans,NumberOfTimes90DaysLate,NumberRealEstateLoansOrLines," +
	"NumberOfTime60-89DaysPastDueNotWorse,NumberOfDependents"

func TestRead(t *testing.T) {
	t.Run("comma separated with index column", func(t *testing.T) {
		input := "," + header + "\n" +
			"0,0.6,45,0,0.3,5000,7,0,1,0,2\n" +
			"1,0.9,31,2,0.8,2100,3,1,0,1,0\n"

		records, err := tabular.Read(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, model.SampleRecord(), records[0])
		assert.Equal(t, "31", records[1][model.FeatureAge])
		assert.NotContains(t, records[0], "")
	})

	t.Run("byte order mark and semicolons", func(t *testing.T) {
		input := "\xEF\xBB\xBF" + strings.ReplaceAll(header, ",", ";") + "\n0.6;45;0;0.3;5000;7;0;1;0;2\n"

		records, err := tabular.Read(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, model.SampleRecord(), records[0])
	})

	t.Run("tab separated with padded header", func(t *testing.T) {
		input := " age \tDebtRatio\n45\t0.3\n"

		records, err := tabular.Read(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []model.ClientRecord{{"age": "45", "DebtRatio": "0.3"}}, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := tabular.Read(strings.NewReader(header + "\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := tabular.Read(strings.NewReader(""))
		assert.ErrorIs(t, err, tabular.ErrNoHeader)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := tabular.Read(strings.NewReader("age,DebtRatio\n45\n"))
		assert.ErrorContains(t, err, "read row 0")
	})

	t.Run("duplicate column", func(t *testing.T) {
		_, err := tabular.Read(strings.NewReader("age,age\n1,2\n"))
		assert.ErrorContains(t, err, "duplicate column")
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\n0.6,45,0,0.3,5000,7,0,1,0,2\n"), 0o600))

	records, err := tabular.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = tabular.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
