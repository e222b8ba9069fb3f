package dataset

// AmateurSeed is the fallback repeater list; uncovered entries supplement
// every merge so each repeater band has rows even before the first live
// fetch ever succeeds. Central Minnesota coverage across all five bands.
var AmateurSeed = []Repeater{
	// 10m
	{Call: "W0EXP", Location: "Minneapolis, MN", Frequency: 29.620, Output: 29.620, Input: 29.620, Lat: 44.9778, Lon: -93.2650},
	{Call: "K0HF", Location: "St. Paul, MN", Frequency: 29.640, Output: 29.640, Input: 29.640, Lat: 44.9537, Lon: -93.0900},
	// 6m
	{Call: "W0UJ", Location: "Brainerd, MN", Frequency: 53.110, Output: 53.110, Input: 52.110, Tone: "123.0", Lat: 46.3560, Lon: -94.2008},
	{Call: "W0VHF", Location: "Minneapolis, MN", Frequency: 53.290, Output: 53.290, Input: 52.290, Tone: "100.0", Lat: 44.9778, Lon: -93.2650},
	{Call: "K0SIX", Location: "Duluth, MN", Frequency: 53.370, Output: 53.370, Input: 52.370, Tone: "103.5", Lat: 46.7867, Lon: -92.1005},
	{Call: "WB0SIX", Location: "Rochester, MN", Frequency: 53.430, Output: 53.430, Input: 52.430, Tone: "107.2", Lat: 44.0121, Lon: -92.4802},
	// 1.25m
	{Call: "N0ONT", Location: "Minneapolis, MN", Frequency: 224.380, Output: 224.380, Input: 223.380, Tone: "103.5", Lat: 44.9778, Lon: -93.2650},
	{Call: "KC0125", Location: "St. Paul, MN", Frequency: 224.460, Output: 224.460, Input: 223.460, Tone: "107.2", Lat: 44.9537, Lon: -93.0900},
	{Call: "W0RPT", Location: "Duluth, MN", Frequency: 224.540, Output: 224.540, Input: 223.540, Tone: "100.0", Lat: 46.7867, Lon: -92.1005},
	// 2m
	{Call: "W0BTO", Location: "Brainerd, MN", Frequency: 146.760, Output: 146.760, Input: 146.160, Tone: "114.8", Lat: 46.3583, Lon: -94.2003},
	{Call: "KC0TZF", Location: "Little Falls, MN", Frequency: 147.300, Output: 147.300, Input: 147.900, Tone: "123.0", Lat: 45.9763, Lon: -94.3625},
	{Call: "K0LFD", Location: "Little Falls, MN", Frequency: 145.350, Output: 145.350, Input: 144.750, Tone: "103.5", Lat: 45.9763, Lon: -94.3625},
	{Call: "N0GWS", Location: "Grand Rapids, MN", Frequency: 145.230, Output: 145.230, Input: 144.630, Tone: "91.5", Lat: 47.2399, Lon: -93.5277},
	// 70cm
	{Call: "W0AIH", Location: "Baxter, MN", Frequency: 444.025, Output: 444.025, Input: 449.025, Tone: "131.8", Lat: 46.3583, Lon: -94.2003},
	{Call: "KC0YHM", Location: "Crosby, MN", Frequency: 442.750, Output: 442.750, Input: 447.750, Tone: "100.0", Lat: 46.4816, Lon: -93.9589},
	{Call: "W0RTN", Location: "St. Cloud, MN", Frequency: 444.550, Output: 444.550, Input: 449.550, Tone: "131.8", Lat: 45.5372, Lon: -94.1653},
}
