package dto

// LocalExport contenido exportado del almacenamiento local del navegador
// (claves weddingTodos, weddingCategories y weddingSettings).
type LocalExport struct {
	Todos      []LocalTodo     `json:"weddingTodos"`
	Categories []LocalCategory `json:"weddingCategories"`
	Settings   *LocalSettings  `json:"weddingSettings,omitempty"`
}

// LocalTodo tarea anidada tal como la guarda el cliente sin servidor.
// Las fechas llegan como texto (ISO-8601 o solo fecha).
type LocalTodo struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Completed  bool        `json:"completed"`
	CategoryID string      `json:"categoryId"`
	Priority   string      `json:"priority"`
	ParentID   string      `json:"parentId,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	DueDate    string      `json:"dueDate,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	Children   []LocalTodo `json:"children,omitempty"`
}

// LocalCategory categoría tal como la guarda el cliente sin servidor.
type LocalCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// LocalSettings configuración de boda del cliente sin servidor.
type LocalSettings struct {
	BrideName        string   `json:"brideName"`
	GroomName        string   `json:"groomName"`
	WeddingDate      string   `json:"weddingDate"`
	BackgroundImages []string `json:"backgroundImages"`
	Theme            string   `json:"theme"`
	WeddingQuote     string   `json:"weddingQuote"`
}

// LocalImportResult resumen de una importación.
type LocalImportResult struct {
	CategoriesCreated int    `json:"categoriesCreated"`
	CategoriesMatched int    `json:"categoriesMatched"`
	TodosCreated      int    `json:"todosCreated"`
	TodosSkipped      int    `json:"todosSkipped"`
	SettingsImported  bool   `json:"settingsImported"`
	SettingsSkipped   string `json:"settingsSkipped,omitempty"` // motivo si no se importó
}
