package dataset

// SkywarnStations is the built-in SKYWARN and ARES net reference. Live API
// rows take precedence; these fill gaps the API never covers and carry the
// table alone when the API is offline.
var SkywarnStations = []Repeater{
	{Call: "W0EAR", Location: "Minneapolis ARES", Frequency: 146.94, Tone: "114.8", Lat: 44.9778, Lon: -93.2650},
	{Call: "WB0CMZ", Location: "Ramsey County ARES", Frequency: 145.43, Tone: "123.0", Lat: 44.9537, Lon: -93.0900},
	{Call: "KC0YHH", Location: "Anoka County ARES", Frequency: 145.45, Tone: "131.8", Lat: 45.1975, Lon: -93.3063},
	{Call: "W0MSP", Location: "MSP Emergency Coord", Frequency: 147.42, Tone: "100.0", Lat: 44.8848, Lon: -93.2223},
	{Call: "K0USC", Location: "Duluth SKYWARN", Frequency: 146.76, Tone: "131.8", Lat: 46.7867, Lon: -92.1005},
	{Call: "W0HSC", Location: "Rochester ARES", Frequency: 147.06, Tone: "100.0", Lat: 44.0121, Lon: -92.4802},
	{Call: "KC0OOO", Location: "St. Cloud ARES", Frequency: 145.47, Tone: "103.5", Lat: 45.5579, Lon: -94.2476},
	{Call: "W0RAN", Location: "Brainerd SKYWARN", Frequency: 146.85, Tone: "136.5", Lat: 46.3580, Lon: -94.2008},
	{Call: "N0BVE", Location: "Bemidji Emergency", Frequency: 146.67, Tone: "94.8", Lat: 47.4737, Lon: -94.8789},
	{Call: "WA0TDA", Location: "Itasca County ARES", Frequency: 147.33, Tone: "107.2", Lat: 47.2378, Lon: -93.5308},
	{Call: "W0TCX", Location: "Mankato SKYWARN", Frequency: 146.73, Tone: "123.0", Lat: 44.1636, Lon: -94.0719},
	{Call: "KC0BSC", Location: "Winona Emergency", Frequency: 145.17, Tone: "107.2", Lat: 44.0498, Lon: -91.6407},
	{Call: "W0ZPL", Location: "Albert Lea ARES", Frequency: 146.68, Tone: "131.8", Lat: 43.6481, Lon: -93.3687},
	{Call: "KC0JHF", Location: "Marshall SKYWARN", Frequency: 147.24, Tone: "94.8", Lat: 44.4469, Lon: -95.7881},
	{Call: "W0MWX", Location: "Moorhead ARES", Frequency: 145.23, Tone: "114.8", Lat: 46.8738, Lon: -96.7667},
	{Call: "KC0AHX", Location: "Alexandria SKYWARN", Frequency: 146.91, Tone: "103.5", Lat: 45.8855, Lon: -95.3772},
	{Call: "W0IAC", Location: "International Falls", Frequency: 147.39, Tone: "136.5", Lat: 48.6019, Lon: -93.4016},
	{Call: "KC0EMG", Location: "Grand Marais ARES", Frequency: 146.55, Tone: "100.0", Lat: 47.7503, Lon: -90.3376},
	{Call: "N0QVC", Location: "Ely Emergency Net", Frequency: 145.35, Tone: "131.8", Lat: 47.9032, Lon: -91.8673},
}
