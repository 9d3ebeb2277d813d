package entity

// Catalog bundles the lookup tables the dashboards render statuses with
type Catalog struct {
	ContractStatuses map[ContractStatus]StatusLabel      `json:"contractStatuses"`
	SignerStatuses   map[SignerStatus]StatusLabel        `json:"signerStatuses"`
	TimelineEvents   map[TimelineEventType]TimelineLabel `json:"timelineEvents"`
	Categories       []CategoryOption                    `json:"categories"`
	Reminders        []ReminderOption                    `json:"reminders"`
}

func NewCatalog() *Catalog {
	c := &Catalog{
		ContractStatuses: make(map[ContractStatus]StatusLabel, len(ContractStatuses)),
		SignerStatuses:   make(map[SignerStatus]StatusLabel, len(SignerStatuses)),
		TimelineEvents:   TimelineLabels(),
		Categories:       append([]CategoryOption(nil), TemplateCategories...),
		Reminders:        append([]ReminderOption(nil), ReminderOptions...),
	}
	for _, s := range ContractStatuses {
		c.ContractStatuses[s] = s.Label()
	}
	for _, s := range SignerStatuses {
		c.SignerStatuses[s] = s.Label()
	}
	return c
}
