package domain

// Driver status tags. Anything other than ok names the reason the driver
// degraded to a neutral signal; degradation is never an error path.
const (
	DriverStatusOK = "ok"

	statusMissingPrefix = "missing_data:"
	statusInvalidPrefix = "invalid_price:"
)

// MissingDataStatus tags a driver that could not find a required input key.
func MissingDataStatus(key string) string {
	return statusMissingPrefix + key
}

// InvalidPriceStatus tags a driver whose posted-price input was unusable.
func InvalidPriceStatus(field string) string {
	return statusInvalidPrefix + field
}

// Driver is one signal's audited contribution to a market decision.
// Ineligible drivers are retained with a zero contribution so a reader can
// see what the engine looked at, not just what counted.
type Driver struct {
	DriverKey string  `json:"driver_key"`
	Weight    float64 `json:"weight"`
	Eligible  bool    `json:"eligible"`
	Signal    float64 `json:"signal"`
	Contrib   float64 `json:"contrib"`
	Status    string  `json:"status"`
}

// Degraded reports whether the driver fell back to a neutral signal.
func (d Driver) Degraded() bool {
	return d.Status != DriverStatusOK
}
