package diag

// Severity — уровень диагностики. Значения упорядочены: Bag.HasErrors и
// Bag.HasWarnings сравнивают через >=.
type Severity uint8

const (
	SevInfo    Severity = iota // справочные коды LEX1000, BND2000
	SevWarning                 // код разобран, но с допущением: незакрытая строка или блок
	SevError                   // значение не получено
)

// String returns the upper-case label shared by the pretty, short and JSON outputs.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
