package usecases

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/batchsource"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// ClientRow is one client line of a reconcile batch. AllocationCount is the
// number of in-stock units to link to the client.
type ClientRow struct {
	Line            int    `json:"line"`
	Code            string `json:"client_code" validate:"required,max=50"`
	Name            string `json:"name" validate:"required,max=255"`
	CNPJ            string `json:"cnpj" validate:"max=20"`
	Address         string `json:"address" validate:"max=255"`
	City            string `json:"city" validate:"max=100"`
	State           string `json:"state" validate:"max=2"`
	AllocationCount int    `json:"allocation_count" validate:"gte=0"`
}

func (r ClientRow) validate() error {
	return utils.ValidateStruct(r)
}

var clientColumns = struct {
	code, name, cnpj, count, address, city, state []string
}{
	code:    []string{"codigo", "codigo_cliente", "codigo_do_cliente", "client_code", "code"},
	name:    []string{"nome", "nome_cliente", "nome_do_cliente", "client_name", "razao_social", "name"},
	cnpj:    []string{"cnpj"},
	count:   []string{"total_telas", "total_de_telas", "telas", "total_screens", "screens"},
	address: []string{"endereco", "endereco_completo", "address", "rua"},
	city:    []string{"cidade", "city"},
	state:   []string{"estado", "uf", "state"},
}

// ClientRowsFromRecords maps batch records to client rows. An unparsable
// count is kept as -1 so validation reports it against the row.
func ClientRowsFromRecords(records []batchsource.Record) []ClientRow {
	rows := make([]ClientRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ClientRow{
			Line:            rec.Line,
			Code:            rec.Value(clientColumns.code...),
			Name:            rec.Value(clientColumns.name...),
			CNPJ:            rec.Value(clientColumns.cnpj...),
			Address:         rec.Value(clientColumns.address...),
			City:            rec.Value(clientColumns.city...),
			State:           rec.Value(clientColumns.state...),
			AllocationCount: parseCount(rec.Value(clientColumns.count...)),
		})
	}
	return rows
}

func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Spreadsheets often store integers as "5.0".
		f, ferr := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if ferr != nil || f != float64(int(f)) {
			return -1
		}
		n = int(f)
	}
	return n
}

// EquipmentRow is one line of an equipment batch import.
type EquipmentRow struct {
	Line           int    `json:"line"`
	SerialNumber   string `json:"serial_number" validate:"required,max=100"`
	Model          string `json:"model" validate:"required,max=200"`
	MACAddress     string `json:"mac_address"`
	Location       string `json:"location"`
	PlayerID       string `json:"player_id"`
	PlayerLegacyID string `json:"player_legacy_id"`
	OSVersion      string `json:"os_version"`
	AppVersion     string `json:"app_version"`
	Unlinked       bool   `json:"unlinked"`
}

func (r EquipmentRow) validate() error {
	return utils.ValidateStruct(r)
}

var equipmentColumns = struct {
	serial, model, mac, location, playerID, playerLegacyID, osVersion, appVersion, unlinked []string
}{
	serial:         []string{"numero_de_serie", "numero_do_serie", "serial_number", "serial"},
	model:          []string{"modelo_do_aparelho", "modelo", "model"},
	mac:            []string{"endereco_mac", "mac_address", "mac"},
	location:       []string{"localizacao_lat_long", "localizacao", "location"},
	playerID:       []string{"id_do_player", "player_id"},
	playerLegacyID: []string{"id_legado_do_player", "player_legacy_id"},
	osVersion:      []string{"versao_do_os", "os_version"},
	appVersion:     []string{"versao_do_app", "app_version"},
	unlinked:       []string{"equipamento_desvinculado", "desvinculado", "unlinked"},
}

// RequireEquipmentColumns fails when the file lacks the serial or model column.
func RequireEquipmentColumns(records []batchsource.Record) error {
	if len(records) == 0 {
		return nil
	}
	first := records[0]
	if !first.Has(equipmentColumns.serial...) {
		return fmt.Errorf("required column not found: serial_number")
	}
	if !first.Has(equipmentColumns.model...) {
		return fmt.Errorf("required column not found: model")
	}
	return nil
}

func EquipmentRowsFromRecords(records []batchsource.Record) []EquipmentRow {
	rows := make([]EquipmentRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EquipmentRow{
			Line:           rec.Line,
			SerialNumber:   rec.Value(equipmentColumns.serial...),
			Model:          rec.Value(equipmentColumns.model...),
			MACAddress:     rec.Value(equipmentColumns.mac...),
			Location:       rec.Value(equipmentColumns.location...),
			PlayerID:       rec.Value(equipmentColumns.playerID...),
			PlayerLegacyID: rec.Value(equipmentColumns.playerLegacyID...),
			OSVersion:      rec.Value(equipmentColumns.osVersion...),
			AppVersion:     rec.Value(equipmentColumns.appVersion...),
			Unlinked:       parseFlag(rec.Value(equipmentColumns.unlinked...)),
		})
	}
	return rows
}

func parseFlag(raw string) bool {
	switch sanitize.Fold(raw) {
	case "1", "sim", "s", "true", "verdadeiro", "yes", "x":
		return true
	}
	return false
}
