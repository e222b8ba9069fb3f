// Package gpsd streams position fixes from gpsd by running gpspipe and
// parsing its line-delimited JSON output. Only TPV messages with a 2D or
// better fix become positions; everything else on the wire is ignored.
package gpsd

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"towerwitch/geo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// tpv mirrors the gpsd TPV message fields we care about. Mode 0/1 means no
// fix, 2 is 2D, 3 is 3D.
type tpv struct {
	Class string    `json:"class"`
	Mode  int       `json:"mode"`
	Time  time.Time `json:"time"`
	Lat   float64   `json:"lat"`
	Lon   float64   `json:"lon"`
	Alt   float64   `json:"alt"`
	Speed float64   `json:"speed"`
	Track float64   `json:"track"`
}

// parseTPV decodes one gpspipe line. It returns false for non-TPV messages,
// fixless TPVs, and lines that fail to decode. gpspipe interleaves VERSION,
// DEVICES, and SKY messages on the same stream, so a false here is routine.
func parseTPV(line []byte) (geo.Position, bool) {
	var msg tpv
	if err := json.Unmarshal(line, &msg); err != nil {
		return geo.Position{}, false
	}
	if msg.Class != "TPV" || msg.Mode < 2 {
		return geo.Position{}, false
	}
	return geo.Position{
		Lat:            msg.Lat,
		Lon:            msg.Lon,
		AltitudeMeters: msg.Alt,
		SpeedMPS:       msg.Speed,
		TrackDegrees:   msg.Track,
		Time:           msg.Time,
	}, true
}
