package core

// Shared builders for core tests.

func cells(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Cell{Value: v, Valid: true}
	}
	return row
}

// cellsWithGaps treats "<nil>" as an absent cell.
func cellsWithGaps(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		if v == "<nil>" {
			row[i] = Cell{}
			continue
		}
		row[i] = Cell{Value: v, Valid: true}
	}
	return row
}

func directoryTable(rows ...[]Cell) Table {
	return Table{
		Headers: []string{"Nit", "Cliente", "Nombre comercial", "Correo cliente", "Vendedor", "Correo vendedor", "Canal", "Cupo"},
		Rows:    rows,
	}
}

func ledgerTable(rows ...[]Cell) Table {
	return Table{
		Headers: []string{"Nombre tercero", "Numero FAC", "Emision", "Vencimiento", "Dias", "Saldo", "Vendedor", "Local"},
		Rows:    rows,
	}
}
