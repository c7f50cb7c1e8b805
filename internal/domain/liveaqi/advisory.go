package liveaqi

// Advise maps an AQI code to static health guidance. Total and pure: codes
// outside 1-5 (including 0 for "absent") yield a neutral non-alerting
// response.
func Advise(code int) Advisory {
	switch code {
	case 1:
		return Advisory{Text: "Air quality is good. Enjoy your usual outdoor activities."}
	case 2:
		return Advisory{Text: "Air quality is fair. Unusually sensitive people should consider limiting prolonged outdoor exertion."}
	case 3:
		return Advisory{Text: "Air quality is moderate. Sensitive groups should reduce extended outdoor exertion."}
	case 4:
		return Advisory{Text: "Air quality is poor. Everyone should limit outdoor exertion and sensitive groups should stay indoors.", Alert: true}
	case 5:
		return Advisory{Text: "Air quality is very poor. Avoid outdoor activity, keep windows closed, and use air purification where available.", Alert: true}
	default:
		return Advisory{Text: "Air quality data unavailable for this location."}
	}
}
