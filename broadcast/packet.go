// Package broadcast pushes the current position and nearest trunked-radio
// sites to companion devices on the local network, over UDP broadcast and
// optionally MQTT. Both transports share the same JSON payload.
package broadcast

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"towerwitch/geo"
	"towerwitch/motion"
	"towerwitch/sites"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tower is the per-site slice of the packet.
type Tower struct {
	SiteName        string  `json:"site_name"`
	County          string  `json:"county"`
	DistanceMiles   float64 `json:"distance"`
	BearingDegrees  float64 `json:"bearing"`
	NAC             string  `json:"nac"`
	ControlChannels string  `json:"control_channels"`
}

// Packet is one broadcast datagram.
type Packet struct {
	Timestamp      string  `json:"timestamp"`
	Source         string  `json:"source"`
	GPSLat         float64 `json:"gps_lat"`
	GPSLon         float64 `json:"gps_lon"`
	SpeedMPS       float64 `json:"speed_mps"`
	IsVehicleSpeed bool    `json:"is_vehicle_speed"`
	Towers         []Tower `json:"closest_armer_towers"`
}

// BuildPacket assembles the payload from the current fix, regime, and the
// ranked site list, which must already be sorted nearest first.
func BuildPacket(p geo.Position, regime motion.Regime, ranked []sites.Ranked, maxTowers int, now time.Time) Packet {
	if maxTowers > 0 && len(ranked) > maxTowers {
		ranked = ranked[:maxTowers]
	}
	towers := make([]Tower, 0, len(ranked))
	for _, r := range ranked {
		towers = append(towers, Tower{
			SiteName:        r.Description,
			County:          r.County,
			DistanceMiles:   r.DistanceMiles,
			BearingDegrees:  r.BearingDegrees,
			NAC:             r.NAC,
			ControlChannels: strings.Join(r.ControlChannels, ", "),
		})
	}
	return Packet{
		Timestamp:      now.Format(time.RFC3339),
		Source:         "TowerWitch",
		GPSLat:         p.Lat,
		GPSLon:         p.Lon,
		SpeedMPS:       p.SpeedMPS,
		IsVehicleSpeed: regime == motion.Vehicle,
		Towers:         towers,
	}
}

// Marshal renders the packet as a compact JSON datagram.
func (p Packet) Marshal() ([]byte, error) {
	return json.Marshal(p)
}
