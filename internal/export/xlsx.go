package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/pregnancy"
)

// Workbook sheets, in order.
var Sheets = []string{"Profile", "Milestones", "Appointments", "Weight", "Water"}

type sheetWriter struct {
	f      *excelize.File
	header int
}

func (sw *sheetWriter) rows(sheet string, header []interface{}, rows [][]interface{}) error {
	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := sw.f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := sw.f.SetRowStyle(sheet, 1, 1, sw.header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return sw.f.SetColWidth(sheet, "A", last, 18)
}

// WriteXLSX writes a workbook with one sheet per record group.
func WriteXLSX(w io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheets[0]); err != nil {
		return err
	}
	for _, name := range Sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	sw := &sheetWriter{f: f, header: header}

	if err := sw.rows("Profile", []interface{}{"Field", "Value"}, profileRows(snap)); err != nil {
		return err
	}

	var milestones [][]interface{}
	for _, m := range snap.Milestones {
		milestones = append(milestones, []interface{}{m.Date, m.Week, m.Type.Label(), m.Title, m.Notes})
	}
	if err := sw.rows("Milestones", []interface{}{"Date", "Week", "Type", "Title", "Notes"}, milestones); err != nil {
		return err
	}

	var appointments [][]interface{}
	for _, a := range snap.Appointments {
		appointments = append(appointments, []interface{}{a.Date, a.Time, a.Title, a.Location, a.Notes})
	}
	if err := sw.rows("Appointments", []interface{}{"Date", "Time", "Title", "Location", "Notes"}, appointments); err != nil {
		return err
	}

	var weights [][]interface{}
	for _, wl := range snap.WeightLogs {
		weights = append(weights, []interface{}{wl.Date, wl.Weight, wl.Note})
	}
	unit := snap.Settings.WeightUnit
	if unit == "" {
		unit = constants.DefaultWeightUnit
	}
	if err := sw.rows("Weight", []interface{}{"Date", fmt.Sprintf("Weight (%s)", unit), "Note"}, weights); err != nil {
		return err
	}

	if err := sw.rows("Water", []interface{}{"Date", "Total (ml)", "Goal (ml)"}, waterRows(snap)); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func profileRows(snap Snapshot) [][]interface{} {
	rows := [][]interface{}{
		{"Exported at", snap.ExportedAt.Format("2006-01-02 15:04 MST")},
	}
	if snap.Profile == nil {
		return append(rows, []interface{}{"Profile", "not set up"})
	}
	p := snap.Profile
	rp := p.Reference
	rows = append(rows,
		[]interface{}{"Name", p.DisplayName()},
		[]interface{}{"Reference date", rp.Date.Format(constants.DateFormat)},
		[]interface{}{"Reference progress", fmt.Sprintf("%dw %dd", rp.Weeks, rp.Days)},
		[]interface{}{"LMP", pregnancy.LMP(rp).Format(constants.DateFormat)},
		[]interface{}{"Due date", pregnancy.DueDate(rp).Format(constants.DateFormat)},
	)
	if s := snap.Status; s != nil {
		rows = append(rows,
			[]interface{}{"Progress", s.String()},
			[]interface{}{"Percent complete", s.PercentComplete},
			[]interface{}{"Trimester", pregnancy.Trimester(s.Weeks)},
		)
	}
	return rows
}

// waterRows totals water logs per day.
func waterRows(snap Snapshot) [][]interface{} {
	totals := make(map[string]int)
	for _, wl := range snap.WaterLogs {
		totals[wl.Date] += wl.AmountMl
	}
	dates := make([]string, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	goal := snap.Settings.WaterGoalMl
	if n := len(snap.DietPreferences); n > 0 && snap.DietPreferences[n-1].WaterGoalMl > 0 {
		goal = snap.DietPreferences[n-1].WaterGoalMl
	}

	rows := make([][]interface{}, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, []interface{}{d, totals[d], goal})
	}
	return rows
}
