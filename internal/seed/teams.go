package seed

// Team is one seeded school
type Team struct {
	Abbreviation string
	ShortName    string
	Name         string
	Color        string
}

// Conference groups the teams seeded under one conference name
type Conference struct {
	Name  string
	Teams []Team
}

var sec = Conference{Name: "SEC", Teams: []Team{
	{"ALA", "Alabama", "Alabama Crimson Tide", "#9E1B32"},
	{"ARK", "Arkansas", "Arkansas Razorbacks", "#9D2235"},
	{"AUB", "Auburn", "Auburn Tigers", "#0C2340"},
	{"FLA", "Florida", "Florida Gators", "#0021A5"},
	{"UGA", "Georgia", "Georgia Bulldogs", "#BA0C2F"},
	{"UK", "Kentucky", "Kentucky Wildcats", "#0033A0"},
	{"LSU", "LSU", "LSU Tigers", "#461D7C"},
	{"MSST", "Mississippi State", "Mississippi State Bulldogs", "#660000"},
	{"MIZ", "Missouri", "Missouri Tigers", "#F1B82D"},
	{"OU", "Oklahoma", "Oklahoma Sooners", "#841617"},
	{"MISS", "Ole Miss", "Ole Miss Rebels", "#CE1126"},
	{"SC", "South Carolina", "South Carolina Gamecocks", "#73000A"},
	{"TENN", "Tennessee", "Tennessee Volunteers", "#FF8200"},
	{"TEX", "Texas", "Texas Longhorns", "#BF5700"},
	{"TAMU", "Texas A&M", "Texas A&M Aggies", "#500000"},
	{"VAN", "Vanderbilt", "Vanderbilt Commodores", "#866D4B"},
}}

var bigTen = Conference{Name: "Big Ten", Teams: []Team{
	{"ILL", "Illinois", "Illinois Fighting Illini", "#E84A27"},
	{"IND", "Indiana", "Indiana Hoosiers", "#990000"},
	{"IOWA", "Iowa", "Iowa Hawkeyes", "#FFCD00"},
	{"MD", "Maryland", "Maryland Terrapins", "#E03A3E"},
	{"MICH", "Michigan", "Michigan Wolverines", "#00274C"},
	{"MSU", "Michigan State", "Michigan State Spartans", "#18453B"},
	{"MINN", "Minnesota", "Minnesota Golden Gophers", "#7A0019"},
	{"NEB", "Nebraska", "Nebraska Cornhuskers", "#E41C38"},
	{"NW", "Northwestern", "Northwestern Wildcats", "#4E2A84"},
	{"OSU", "Ohio State", "Ohio State Buckeyes", "#BB0000"},
	{"ORE", "Oregon", "Oregon Ducks", "#154733"},
	{"PSU", "Penn State", "Penn State Nittany Lions", "#041E42"},
	{"PUR", "Purdue", "Purdue Boilermakers", "#CEB888"},
	{"RUT", "Rutgers", "Rutgers Scarlet Knights", "#CC0033"},
	{"UCLA", "UCLA", "UCLA Bruins", "#2D68C4"},
	{"USC", "USC", "USC Trojans", "#990000"},
	{"WASH", "Washington", "Washington Huskies", "#4B2E83"},
	{"WIS", "Wisconsin", "Wisconsin Badgers", "#C5050C"},
}}

var big12 = Conference{Name: "Big 12", Teams: []Team{
	{"ARIZ", "Arizona", "Arizona Wildcats", "#CC0033"},
	{"ASU", "Arizona State", "Arizona State Sun Devils", "#8C1D40"},
	{"BAY", "Baylor", "Baylor Bears", "#154734"},
	{"BYU", "BYU", "BYU Cougars", "#002E5D"},
	{"CIN", "Cincinnati", "Cincinnati Bearcats", "#E00122"},
	{"COLO", "Colorado", "Colorado Buffaloes", "#CFB87C"},
	{"HOU", "Houston", "Houston Cougars", "#C8102E"},
	{"ISU", "Iowa State", "Iowa State Cyclones", "#C8102E"},
	{"KU", "Kansas", "Kansas Jayhawks", "#0051BA"},
	{"KSU", "Kansas State", "Kansas State Wildcats", "#512888"},
	{"OKST", "Oklahoma State", "Oklahoma State Cowboys", "#FF7300"},
	{"TCU", "TCU", "TCU Horned Frogs", "#4D1979"},
	{"TTU", "Texas Tech", "Texas Tech Red Raiders", "#CC0000"},
	{"UCF", "UCF", "UCF Knights", "#BA9B37"},
	{"UTAH", "Utah", "Utah Utes", "#CC0000"},
	{"WVU", "West Virginia", "West Virginia Mountaineers", "#002855"},
}}

var acc = Conference{Name: "ACC", Teams: []Team{
	{"BC", "Boston College", "Boston College Eagles", "#98002E"},
	{"CAL", "California", "California Golden Bears", "#003262"},
	{"CLEM", "Clemson", "Clemson Tigers", "#F56600"},
	{"DUKE", "Duke", "Duke Blue Devils", "#003087"},
	{"FSU", "Florida State", "Florida State Seminoles", "#782F40"},
	{"GT", "Georgia Tech", "Georgia Tech Yellow Jackets", "#B3A369"},
	{"LOU", "Louisville", "Louisville Cardinals", "#AD0000"},
	{"MIA", "Miami", "Miami Hurricanes", "#F47321"},
	{"NCST", "NC State", "NC State Wolfpack", "#CC0000"},
	{"UNC", "North Carolina", "North Carolina Tar Heels", "#7BAFD4"},
	{"PITT", "Pittsburgh", "Pittsburgh Panthers", "#003594"},
	{"SMU", "SMU", "SMU Mustangs", "#0033A0"},
	{"STAN", "Stanford", "Stanford Cardinal", "#8C1515"},
	{"SYR", "Syracuse", "Syracuse Orange", "#F76900"},
	{"UVA", "Virginia", "Virginia Cavaliers", "#232D4B"},
	{"VT", "Virginia Tech", "Virginia Tech Hokies", "#630031"},
	{"WAKE", "Wake Forest", "Wake Forest Demon Deacons", "#9E7E38"},
}}

var notreDame = Team{"ND", "Notre Dame", "Notre Dame Fighting Irish", "#0C2340"}

var bigEast = Conference{Name: "Big East", Teams: []Team{
	{"BUT", "Butler", "Butler Bulldogs", "#13294B"},
	{"CONN", "UConn", "UConn Huskies", "#000E2F"},
	{"CREI", "Creighton", "Creighton Bluejays", "#005CA9"},
	{"DEP", "DePaul", "DePaul Blue Demons", "#005EB8"},
	{"GTWN", "Georgetown", "Georgetown Hoyas", "#041E42"},
	{"MARQ", "Marquette", "Marquette Golden Eagles", "#003366"},
	{"PROV", "Providence", "Providence Friars", "#000000"},
	{"SJU", "St. John's", "St. John's Red Storm", "#BA0C2F"},
	{"HALL", "Seton Hall", "Seton Hall Pirates", "#004488"},
	{"NOVA", "Villanova", "Villanova Wildcats", "#00205B"},
	{"XAV", "Xavier", "Xavier Musketeers", "#0C2340"},
}}

var wcc = Conference{Name: "WCC", Teams: []Team{
	{"GONZ", "Gonzaga", "Gonzaga Bulldogs", "#041E42"},
	{"SMC", "Saint Mary's", "Saint Mary's Gaels", "#D50032"},
	{"PEPP", "Pepperdine", "Pepperdine Waves", "#00205B"},
}}

func withTeam(c Conference, t Team) Conference {
	teams := append(append([]Team(nil), c.Teams...), t)
	return Conference{Name: c.Name, Teams: teams}
}

// FootballConferences are the FBS programs seeded for football.
// Notre Dame plays football as an independent.
var FootballConferences = []Conference{
	sec, bigTen, big12, acc,
	{Name: "Independent", Teams: []Team{notreDame}},
}

// BasketballConferences are the programs seeded for basketball
var BasketballConferences = []Conference{
	sec, bigTen, big12, withTeam(acc, notreDame), bigEast, wcc,
}
