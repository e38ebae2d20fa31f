package engine

// Achievement is a milestone shown on the achievements page.
type Achievement struct {
	Name        string
	Description string
	Unlocked    bool
}

// Achievement thresholds.
const (
	MasterFarmerHarvests = 100
	WealthyFarmerMoney   = 10_000
	YearOneDays          = 365
)

// Achievements evaluates every milestone against s. A nil simulation has
// everything locked.
func (s *Simulation) Achievements() []Achievement {
	var st Stats
	money, day := 0, 0
	if s != nil {
		st, money, day = s.Stats, s.Money, s.Day
	}
	return []Achievement{
		{"First Seed", "Plant your first crop", st.Planted > 0},
		{"First Harvest", "Harvest your first crop", st.Harvested > 0},
		{"Master Farmer", "Harvest 100 crops", st.Harvested >= MasterFarmerHarvests},
		{"Wealthy Farmer", "Earn $10,000", money >= WealthyFarmerMoney},
		{"Year One", "Complete a full year", day > YearOneDays},
	}
}
