package export

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// WriteSQLite writes the snapshot to a SQLite database file as a one-shot
// export. The whole snapshot is written in a single transaction, so a
// failure leaves no partial rows behind. Exporting the same composition
// name into an existing file is an error (UNIQUE on compositions.name).
func WriteSQLite(path string, snap *Snapshot) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("applying pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := writeSnapshot(tx, snap); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func writeSnapshot(tx *sql.Tx, snap *Snapshot) error {
	res, err := tx.Exec(`INSERT INTO compositions (name) VALUES (?)`, snap.CompositionName)
	if err != nil {
		return fmt.Errorf("writing composition %q: %w", snap.CompositionName, err)
	}
	compositionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("writing composition %q: %w", snap.CompositionName, err)
	}

	for pos, c := range snap.Components {
		if err := writeComponent(tx, compositionID, pos, c); err != nil {
			return err
		}
	}
	return nil
}

func writeComponent(tx *sql.Tx, compositionID int64, pos int, c ComponentSnapshot) error {
	res, err := tx.Exec(
		`INSERT INTO components (composition_id, name, type, position) VALUES (?, ?, ?, ?)`,
		compositionID, c.Name, c.Type, pos,
	)
	if err != nil {
		return fmt.Errorf("writing component %q: %w", c.Name, err)
	}
	componentID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("writing component %q: %w", c.Name, err)
	}

	for i, p := range c.Ports {
		_, err := tx.Exec(
			`INSERT INTO ports (component_id, name, direction, position) VALUES (?, ?, ?, ?)`,
			componentID, p.Name, p.Type, i,
		)
		if err != nil {
			return fmt.Errorf("writing port %q: %w", p.Name, err)
		}
	}

	for i, r := range c.Runnables {
		var period sql.NullInt64
		if r.Period != nil {
			period = sql.NullInt64{Int64: int64(*r.Period), Valid: true}
		}
		_, err := tx.Exec(
			`INSERT INTO runnables (component_id, name, "trigger", period, position) VALUES (?, ?, ?, ?, ?)`,
			componentID, r.Name, r.Trigger, period, i,
		)
		if err != nil {
			return fmt.Errorf("writing runnable %q: %w", r.Name, err)
		}
	}

	for i, iface := range c.Interfaces {
		res, err := tx.Exec(
			`INSERT INTO interfaces (component_id, name, type, position) VALUES (?, ?, ?, ?)`,
			componentID, iface.Name, iface.Type, i,
		)
		if err != nil {
			return fmt.Errorf("writing interface %q: %w", iface.Name, err)
		}
		interfaceID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("writing interface %q: %w", iface.Name, err)
		}
		for j, portName := range iface.AssociatedPorts {
			_, err := tx.Exec(
				`INSERT INTO interface_ports (interface_id, port_name, position) VALUES (?, ?, ?)`,
				interfaceID, portName, j,
			)
			if err != nil {
				return fmt.Errorf("writing interface %q port %q: %w", iface.Name, portName, err)
			}
		}
		for j, e := range iface.DataElements {
			_, err := tx.Exec(
				`INSERT INTO data_elements (interface_id, name, type, position) VALUES (?, ?, ?, ?)`,
				interfaceID, e.Name, e.Type, j,
			)
			if err != nil {
				return fmt.Errorf("writing data element %q: %w", e.Name, err)
			}
		}
	}
	return nil
}
