package batchsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Código do Cliente":       "codigo_do_cliente",
		"  Total de Telas ":       "total_de_telas",
		"Endereço MAC ":           "endereco_mac",
		"Localização (Lat, Long)": "localizacao_lat_long",
		"Número de série":         "numero_de_serie",
		"UF":                      "uf",
		"---":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestReadCSV_SemicolonWithBOM(t *testing.T) {
	input := "\xef\xbb\xbfCódigo;Nome;Total de Telas;Estado\n" +
		"C-1;Clínica Central;5;pe\n" +
		";;;\n" +
		"C-2;\"Hospital; Norte\";0;\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, "C-1", records[0].Value("codigo"))
	assert.Equal(t, "5", records[0].Value("total_telas", "total_de_telas"))
	assert.Equal(t, "pe", records[0].Value("estado", "uf"))

	assert.Equal(t, 4, records[1].Line, "blank rows keep line numbering")
	assert.Equal(t, "Hospital; Norte", records[1].Value("nome"))
	assert.Equal(t, "", records[1].Value("estado"))
}

func TestRecordValue_ContainsFallback(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("codigo_do_cliente,razao_social\nX1,Acme\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "X1", records[0].Value("codigo"))
	assert.Equal(t, "Acme", records[0].Value("nome", "razao_social"))
	assert.True(t, records[0].Has("razao social"))
	assert.False(t, records[0].Has("nome"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("\n\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("codigo,nome\n"))
	assert.Error(t, err)
}

func TestReadFile_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	rows := [][]any{
		{"Número de Série", "Modelo do Aparelho", "Endereço MAC"},
		{"sn-001", "Aquario STV-2000", "aa:bb:cc:dd:ee:ff"},
		{"sn-002", "LG Monitor 43", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "equipamentos.xlsx")
	require.NoError(t, wb.SaveAs(path))

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sn-001", records[0].Value("numero_de_serie", "serial_number"))
	assert.Equal(t, "LG Monitor 43", records[1].Value("modelo_do_aparelho"))
	assert.Equal(t, 3, records[1].Line)
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientes.ods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "unsupported")
}
