package dataset

// NOAAFrequencies lists the seven standard NOAA Weather Radio channels in
// MHz, 162.400 through 162.550 in 25 kHz steps.
var NOAAFrequencies = []float64{
	162.400,
	162.425,
	162.450,
	162.475,
	162.500,
	162.525,
	162.550,
}

// NOAAStations is the built-in NWR transmitter reference covering Minnesota
// and adjacent coverage from neighboring states. These records never expire;
// transmitter sites change rarely enough that a release cycle keeps up.
var NOAAStations = []Repeater{
	{Call: "KEC65", Location: "Minneapolis/St. Paul", Frequency: 162.550, SAMECodes: "027003,027019,027037,027053,027123,027139,027163", Lat: 44.8588, Lon: -93.2087},
	{Call: "KIG64", Location: "Duluth", Frequency: 162.550, SAMECodes: "027017,027035,027075,027115,027137", Lat: 46.7867, Lon: -92.1005},
	{Call: "KIF73", Location: "St. Cloud", Frequency: 162.525, SAMECodes: "027009,027145,027171", Lat: 45.5608, Lon: -94.2041},
	{Call: "WXM63", Location: "Grand Rapids", Frequency: 162.525, SAMECodes: "027031,027061,027097", Lat: 47.2378, Lon: -93.5308},
	{Call: "KJY63", Location: "Aitkin", Frequency: 162.525, SAMECodes: "027001,027027,027035,027097", Lat: 46.5330, Lon: -93.7108},
	{Call: "WXM51", Location: "Little Falls", Frequency: 162.475, SAMECodes: "027097,027153", Lat: 45.9763, Lon: -94.3625},
	{Call: "WXJ64", Location: "Leader (Omen Lake)", Frequency: 162.550, SAMECodes: "027027,027035,027097", Lat: 46.6500, Lon: -94.1000},
	{Call: "KXI44", Location: "Wadena", Frequency: 162.450, SAMECodes: "027111,027153,027159", Lat: 46.4388, Lon: -95.1364},
	{Call: "KJY80", Location: "Red Wing", Frequency: 162.450, SAMECodes: "027049,027131,055011,055063", Lat: 44.5633, Lon: -92.5340},
	{Call: "KXI31", Location: "Jeffers", Frequency: 162.450, SAMECodes: "027101,027103,027159,056041", Lat: 44.0733, Lon: -95.1953},
	{Call: "KXI32", Location: "Sleepy Eye", Frequency: 162.475, SAMECodes: "027013,027091,027103,027169", Lat: 44.3008, Lon: -94.7219},
	{Call: "KIH60", Location: "Alexandria", Frequency: 162.400, SAMECodes: "027041,027051,027111", Lat: 45.8855, Lon: -95.3772},
	{Call: "KXI48", Location: "Morris", Frequency: 162.475, SAMECodes: "027129,027151,027167", Lat: 45.5869, Lon: -95.9142},
	{Call: "KXI51", Location: "Marshall", Frequency: 162.425, SAMECodes: "027083,027091,027113,027123,027129,027165,027173", Lat: 44.4469, Lon: -95.7881},
	{Call: "KXI61", Location: "Montevideo", Frequency: 162.400, SAMECodes: "027023,027067,027111,027167,027173", Lat: 44.9388, Lon: -95.7142},
	{Call: "KZZ34", Location: "Rochester", Frequency: 162.525, SAMECodes: "027009,027045,027079,027109,027157,055005,055157", Lat: 44.0121, Lon: -92.4802},
	{Call: "KZZ56", Location: "Worthington", Frequency: 162.400, SAMECodes: "027063,027105,027161,046065,046133", Lat: 43.6191, Lon: -95.5956},
	{Call: "WXK40", Location: "La Crescent", Frequency: 162.475, SAMECodes: "027055,027109,027157,055063,055081,055123", Lat: 43.8241, Lon: -91.3096},
	{Call: "WXK95", Location: "Hinckley", Frequency: 162.550, SAMECodes: "027017,027025,027037,027061,027161,055023", Lat: 46.0047, Lon: -92.9405},
	{Call: "WXM65", Location: "Mankato", Frequency: 162.425, SAMECodes: "027013,027015,027079,027103,027143,027161", Lat: 44.1636, Lon: -94.0719},
	{Call: "WXM86", Location: "International Falls", Frequency: 162.475, SAMECodes: "027071,027077,055023", Lat: 48.6019, Lon: -93.4016},
	{Call: "WWG55", Location: "Albert Lea", Frequency: 162.475, SAMECodes: "027013,027047,027109,056043", Lat: 43.6481, Lon: -93.3687},
	{Call: "WWG56", Location: "Virginia", Frequency: 162.475, SAMECodes: "027017,027137", Lat: 47.5235, Lon: -92.5368},
	{Call: "KEC44", Location: "Thief River Falls", Frequency: 162.400, SAMECodes: "027069,027087,027135,027155", Lat: 48.1173, Lon: -96.1779},
	{Call: "KIF68", Location: "Willmar", Frequency: 162.500, SAMECodes: "027083,027121,027155,027167", Lat: 45.1219, Lon: -95.0433},
	{Call: "KIH41", Location: "Redwood Falls", Frequency: 162.400, SAMECodes: "027127,027173", Lat: 44.5408, Lon: -95.1167},
	{Call: "KIH53", Location: "New Ulm", Frequency: 162.550, SAMECodes: "027013,027015,027103", Lat: 44.3128, Lon: -94.4608},
	{Call: "KEC85", Location: "Grand Forks, ND", Frequency: 162.525, SAMECodes: "038035,038067,038097", Lat: 47.9253, Lon: -97.0329},
	{Call: "KZZ93", Location: "Aberdeen, SD", Frequency: 162.475, SAMECodes: "046005,046025,046051,046091", Lat: 45.4647, Lon: -98.4865},
	{Call: "WXK73", Location: "Eau Claire, WI", Frequency: 162.550, SAMECodes: "055035,055053,055091", Lat: 44.8113, Lon: -91.4985},
	{Call: "WXL40", Location: "La Crosse, WI", Frequency: 162.475, SAMECodes: "055063,055081,055123", Lat: 43.8014, Lon: -91.2396},
	{Call: "KWO39", Location: "Park Rapids", Frequency: 162.525, SAMECodes: "027027,027097,027111", Lat: 46.9233, Lon: -95.0587},
	{Call: "KXI86", Location: "Fergus Falls", Frequency: 162.400, SAMECodes: "027111,027167", Lat: 46.2830, Lon: -96.0779},
	{Call: "WXL35", Location: "Bemidji", Frequency: 162.450, SAMECodes: "027007,027027,027071,027077", Lat: 47.4737, Lon: -94.8789},
	{Call: "WXM32", Location: "Walker", Frequency: 162.475, SAMECodes: "027027,027035,027061", Lat: 47.0942, Lon: -94.5844},
	{Call: "KIG47", Location: "Two Harbors", Frequency: 162.400, SAMECodes: "027061,027075", Lat: 47.0066, Lon: -91.6968},
	{Call: "WXK73", Location: "Winona", Frequency: 162.550, SAMECodes: "027055,027157,055005,055063", Lat: 44.0498, Lon: -91.6407},
	{Call: "KZZ81", Location: "Austin", Frequency: 162.475, SAMECodes: "027045,027109,056043", Lat: 43.6675, Lon: -92.9741},
}
