package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

func testBatch() []beasiswa.Scholarship {
	return []beasiswa.Scholarship{
		{
			Name:             "LPDP",
			Category:         beasiswa.CategoryPTLuarNegeri,
			SourceURL:        "https://lpdp.kemenkeu.go.id",
			Description:      "Beasiswa magister dan doktor",
			Requirements:     "WNI, IPK minimal 3.0",
			Deadline:         "31 Desember 2024",
			RegistrationLink: "https://lpdp.kemenkeu.go.id",
			UpdatedAt:        "2024-03-10 17:00:00",
		},
		{
			Name:             "KIP Kuliah",
			Category:         beasiswa.CategoryPTDalamNegeri,
			SourceURL:        "https://kip-kuliah.kemdikbud.go.id",
			Description:      "Bantuan biaya pendidikan",
			Requirements:     "WNI, lulusan SMA/sederajat",
			Deadline:         "Sepanjang tahun",
			RegistrationLink: "https://kip-kuliah.kemdikbud.go.id",
			UpdatedAt:        "2024-03-10 17:00:00",
		},
	}
}

func TestWriteAllWritesEveryFormat(t *testing.T) {
	dir := t.TempDir()
	e, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	written := e.WriteAll(testBatch())
	require.Equal(t, 3, written)

	for _, name := range []string{JSONFile, CSVFile, XLSXFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "missing backup file %s", name)
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	e, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	batch := testBatch()
	require.NoError(t, e.WriteJSON(batch))

	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)

	var got []beasiswa.Scholarship
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, batch, got)
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	e, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, e.WriteCSV(testBatch()))

	f, err := os.Open(filepath.Join(dir, CSVFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, header, rows[0])
	require.Equal(t, "LPDP", rows[1][0])
	require.Equal(t, "Perguruan Tinggi Dalam Negeri", rows[2][1])
}

func TestWriteXLSXCells(t *testing.T) {
	dir := t.TempDir()
	e, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, e.WriteXLSX(testBatch()))

	f, err := excelize.OpenFile(filepath.Join(dir, XLSXFile))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	got, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "nama_beasiswa", got)

	got, err = f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	require.Equal(t, "LPDP", got)

	got, err = f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	require.Equal(t, "Sepanjang tahun", got)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	_, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
