package sportsdata

// Provider wire shapes. Only the fields the analyst needs are decoded;
// anything malformed or missing decodes to its zero value and is handled
// upstream as absent data.

type teamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type teamSearchEnvelope struct {
	Response []struct {
		Team teamRef `json:"team"`
	} `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short   string `json:"short"`
			Long    string `json:"long"`
			Elapsed int    `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			teamRef
			Winner *bool `json:"winner"`
		} `json:"home"`
		Away struct {
			teamRef
			Winner *bool `json:"winner"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home int `json:"home"`
		Away int `json:"away"`
	} `json:"goals"`
}

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type standingsEnvelope struct {
	Response []struct {
		League struct {
			Standings [][]struct {
				Rank   int     `json:"rank"`
				Team   teamRef `json:"team"`
				Points int     `json:"points"`
				Form   string  `json:"form"`
				All    struct {
					Played int `json:"played"`
					Win    int `json:"win"`
					Draw   int `json:"draw"`
					Lose   int `json:"lose"`
					Goals  struct {
						For     int `json:"for"`
						Against int `json:"against"`
					} `json:"goals"`
				} `json:"all"`
			} `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

type teamStatsEnvelope struct {
	Response struct {
		Team     teamRef `json:"team"`
		Fixtures struct {
			Played struct {
				Total int `json:"total"`
			} `json:"played"`
			Wins struct {
				Total int `json:"total"`
			} `json:"wins"`
			Draws struct {
				Total int `json:"total"`
			} `json:"draws"`
			Loses struct {
				Total int `json:"total"`
			} `json:"loses"`
		} `json:"fixtures"`
		Goals struct {
			For struct {
				Total struct {
					Total int `json:"total"`
				} `json:"total"`
			} `json:"for"`
			Against struct {
				Total struct {
					Total int `json:"total"`
				} `json:"total"`
			} `json:"against"`
		} `json:"goals"`
		CleanSheet struct {
			Total int `json:"total"`
		} `json:"clean_sheet"`
	} `json:"response"`
}

type injuriesEnvelope struct {
	Response []struct {
		Player struct {
			Name   string `json:"name"`
			Reason string `json:"reason"`
			Type   string `json:"type"`
		} `json:"player"`
		Team teamRef `json:"team"`
	} `json:"response"`
}

type lineupPlayer struct {
	Player struct {
		Name string `json:"name"`
		Pos  string `json:"pos"`
	} `json:"player"`
}

type lineupsEnvelope struct {
	Response []struct {
		Team      teamRef `json:"team"`
		Formation string  `json:"formation"`
		Coach     struct {
			Name string `json:"name"`
		} `json:"coach"`
		StartXI     []lineupPlayer `json:"startXI"`
		Substitutes []lineupPlayer `json:"substitutes"`
	} `json:"response"`
}

type eventsEnvelope struct {
	Response []struct {
		Time struct {
			Elapsed int `json:"elapsed"`
			Extra   int `json:"extra"`
		} `json:"time"`
		Team   teamRef `json:"team"`
		Player struct {
			Name string `json:"name"`
		} `json:"player"`
		Assist struct {
			Name string `json:"name"`
		} `json:"assist"`
		Type   string `json:"type"`
		Detail string `json:"detail"`
	} `json:"response"`
}

type squadEnvelope struct {
	Response []struct {
		Team    teamRef `json:"team"`
		Players []struct {
			Name     string `json:"name"`
			Age      int    `json:"age"`
			Number   int    `json:"number"`
			Position string `json:"position"`
		} `json:"players"`
	} `json:"response"`
}
