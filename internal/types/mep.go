package types

// Circuit is one branch circuit serving a room.
type Circuit struct {
	Type    string  `json:"type"`
	Load    float64 `json:"load"`
	Rating  int     `json:"rating"`
	Voltage int     `json:"voltage"`
}

type RoomLoad struct {
	Room     string    `json:"room"`
	Area     float64   `json:"area"`
	Load     float64   `json:"load"`
	Circuits []Circuit `json:"circuits"`
}

// ElectricalLoads are in VA.
type ElectricalLoads struct {
	TotalLoad     float64    `json:"total_load"`
	BaseLoad      float64    `json:"base_load"`
	HVACLoad      float64    `json:"hvac_load"`
	RoomLoads     []RoomLoad `json:"room_loads"`
	OccupancyType Occupancy  `json:"occupancy_type"`
}

type Panel struct {
	Size    int `json:"size"`
	Voltage int `json:"voltage"`
	Phases  int `json:"phases"`
}

type SubPanel struct {
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Voltage  int    `json:"voltage"`
	Circuits int    `json:"circuits"`
}

type Feeder struct {
	Type    string `json:"type"`
	Size    int    `json:"size"`
	Voltage int    `json:"voltage"`
	Current int    `json:"current"`
}

type Distribution struct {
	MainPanel Panel      `json:"main_panel"`
	SubPanels []SubPanel `json:"sub_panels"`
	Feeders   []Feeder   `json:"feeders"`
}

type LightFixture struct {
	Type     string     `json:"type"`
	Watts    int        `json:"watts"`
	Position [2]float64 `json:"position"`
	Height   float64    `json:"height"`
}

type RoomLighting struct {
	Room            string         `json:"room"`
	Area            float64        `json:"area"`
	LightingDensity float64        `json:"lighting_density"`
	TotalWatts      float64        `json:"total_watts"`
	Fixtures        []LightFixture `json:"fixtures"`
}

type BackupLight struct {
	Type          string `json:"type"`
	Watts         int    `json:"watts,omitempty"`
	BatteryBackup string `json:"battery_backup"`
}

type EmergencyLighting struct {
	ExitLighting      BackupLight `json:"exit_lighting"`
	EmergencyFixtures BackupLight `json:"emergency_fixtures"`
}

type ExteriorLight struct {
	Type         string `json:"type"`
	Watts        int    `json:"watts"`
	MotionSensor bool   `json:"motion_sensor,omitempty"`
	SolarPowered bool   `json:"solar_powered,omitempty"`
}

type ExteriorLighting struct {
	SecurityLighting  ExteriorLight `json:"security_lighting"`
	LandscapeLighting ExteriorLight `json:"landscape_lighting"`
}

type LightingDesign struct {
	RoomLighting      []RoomLighting    `json:"room_lighting"`
	EmergencyLighting EmergencyLighting `json:"emergency_lighting"`
	ExteriorLighting  ExteriorLighting  `json:"exterior_lighting"`
}

// FixtureCount returns the number of light fixtures across all rooms.
func (l LightingDesign) FixtureCount() int {
	var n int
	for _, r := range l.RoomLighting {
		n += len(r.Fixtures)
	}
	return n
}

type Generator struct {
	Size              int    `json:"size"`
	Fuel              string `json:"fuel"`
	AutomaticTransfer bool   `json:"automatic_transfer"`
}

type UPS struct {
	Size          int    `json:"size"`
	BatteryBackup string `json:"battery_backup"`
}

type PowerSystems struct {
	MainService Panel     `json:"main_service"`
	Generator   Generator `json:"generator"`
	UPS         UPS       `json:"ups"`
}

type AlarmPanel struct {
	Type          string `json:"type"`
	Zones         int    `json:"zones"`
	BatteryBackup string `json:"battery_backup"`
}

type EmergencyPower struct {
	Type string `json:"type"`
	Size int    `json:"size"`
	Fuel string `json:"fuel"`
}

type EmergencySystems struct {
	FireAlarm      AlarmPanel     `json:"fire_alarm"`
	EmergencyPower EmergencyPower `json:"emergency_power"`
	ExitLighting   BackupLight    `json:"exit_lighting"`
}

// Outlet is a receptacle added by a modification.
type Outlet struct {
	Type     string     `json:"type"`
	Position [2]float64 `json:"position"`
	Rating   string     `json:"rating"`
}

// DisciplineSpec cites the codes, standards and materials of one MEP discipline.
type DisciplineSpec struct {
	Codes     []string `json:"codes"`
	Standards []string `json:"standards"`
	Materials []string `json:"materials"`
}

type Electrical struct {
	Loads            ElectricalLoads  `json:"loads"`
	Distribution     Distribution     `json:"distribution"`
	Lighting         LightingDesign   `json:"lighting"`
	PowerSystems     PowerSystems     `json:"power_systems"`
	EmergencySystems EmergencySystems `json:"emergency_systems"`
	Outlets          []Outlet         `json:"outlets,omitempty"`
	Specifications   DisciplineSpec   `json:"specifications"`
}

type PlumbingLoads struct {
	FixtureCount int     `json:"fixture_count"`
	FixtureUnits int     `json:"fixture_units"`
	WaterDemand  float64 `json:"water_demand"`
	PeakDemand   float64 `json:"peak_demand"`
}

type SupplyLine struct {
	Size     float64 `json:"size"`
	Material string  `json:"material"`
	Pressure int     `json:"pressure"`
}

type Valves struct {
	MainShutoff     string `json:"main_shutoff"`
	FixtureShutoffs string `json:"fixture_shutoffs"`
}

type WaterSupply struct {
	MainLine    SupplyLine `json:"main_line"`
	BranchLines SupplyLine `json:"branch_lines"`
	Valves      Valves     `json:"valves"`
}

type DrainLine struct {
	Size     float64 `json:"size"`
	Material string  `json:"material"`
	Slope    float64 `json:"slope"`
}

type Vents struct {
	MainVent    string `json:"main_vent"`
	BranchVents string `json:"branch_vents"`
}

type Drainage struct {
	MainDrain    DrainLine `json:"main_drain"`
	BranchDrains DrainLine `json:"branch_drains"`
	Vents        Vents     `json:"vents"`
}

type PlumbingFixture struct {
	Type       string `json:"type"`
	Model      string `json:"model"`
	WaterSense bool   `json:"water_sense,omitempty"`
	Gas        bool   `json:"gas,omitempty"`
}

type PlumbingFixtures struct {
	Bathroom []PlumbingFixture `json:"bathroom"`
	Kitchen  []PlumbingFixture `json:"kitchen"`
	Laundry  []PlumbingFixture `json:"laundry"`
}

type WaterHeating struct {
	Type       string `json:"type"`
	Size       int    `json:"size"`
	Fuel       string `json:"fuel"`
	Efficiency string `json:"efficiency"`
	Location   string `json:"location"`
}

type Plumbing struct {
	Loads          PlumbingLoads    `json:"loads"`
	WaterSupply    WaterSupply      `json:"water_supply"`
	Drainage       Drainage         `json:"drainage"`
	Fixtures       PlumbingFixtures `json:"fixtures"`
	WaterHeating   WaterHeating     `json:"water_heating"`
	Specifications DisciplineSpec   `json:"specifications"`
}

type HVACLoads struct {
	CoolingLoad     float64   `json:"cooling_load"`
	HeatingLoad     float64   `json:"heating_load"`
	VentilationLoad float64   `json:"ventilation_load"`
	TotalLoad       float64   `json:"total_load"`
	OccupancyType   Occupancy `json:"occupancy_type"`
}

type HeatingSystem struct {
	Type         string  `json:"type"`
	Size         float64 `json:"size"`
	Fuel         string  `json:"fuel"`
	Efficiency   string  `json:"efficiency"`
	Distribution string  `json:"distribution"`
}

type CoolingSystem struct {
	Type         string  `json:"type"`
	Size         float64 `json:"size"`
	Efficiency   string  `json:"efficiency"`
	Refrigerant  string  `json:"refrigerant"`
	Distribution string  `json:"distribution"`
}

type Ventilation struct {
	Type         string  `json:"type"`
	Rate         float64 `json:"rate"`
	Efficiency   string  `json:"efficiency"`
	Filters      string  `json:"filters"`
	HeatRecovery bool    `json:"heat_recovery"`
}

type HVACControls struct {
	Type             string `json:"type"`
	Zones            int    `json:"zones"`
	Programming      string `json:"programming"`
	RemoteAccess     bool   `json:"remote_access"`
	EnergyMonitoring bool   `json:"energy_monitoring"`
}

type HVAC struct {
	Loads          HVACLoads      `json:"loads"`
	Heating        HeatingSystem  `json:"heating"`
	Cooling        CoolingSystem  `json:"cooling"`
	Ventilation    Ventilation    `json:"ventilation"`
	Controls       HVACControls   `json:"controls"`
	Specifications DisciplineSpec `json:"specifications"`
}

type SprinklerSystem struct {
	Type        string `json:"type"`
	Sprinklers  int    `json:"sprinklers"`
	Coverage    int    `json:"coverage"`
	WaterSupply string `json:"water_supply"`
	Pressure    int    `json:"pressure"`
}

type FireAlarm struct {
	Type          string `json:"type"`
	Zones         int    `json:"zones"`
	Detectors     int    `json:"detectors"`
	PullStations  int    `json:"pull_stations"`
	Horns         int    `json:"horns"`
	BatteryBackup string `json:"battery_backup"`
}

type FireSuppression struct {
	Type       string `json:"type"`
	Coverage   string `json:"coverage"`
	Activation string `json:"activation"`
	Monitoring string `json:"monitoring"`
}

type FireProtection struct {
	SprinklerSystem SprinklerSystem `json:"sprinkler_system"`
	FireAlarm       FireAlarm       `json:"fire_alarm"`
	FireSuppression FireSuppression `json:"fire_suppression"`
	Specifications  DisciplineSpec  `json:"specifications"`
}

type MEPSpecifications struct {
	Electrical     DisciplineSpec `json:"electrical"`
	Plumbing       DisciplineSpec `json:"plumbing"`
	HVAC           DisciplineSpec `json:"hvac"`
	FireProtection DisciplineSpec `json:"fire_protection"`
}

// MEPDesign is the stored mechanical, electrical and plumbing artifact.
type MEPDesign struct {
	Electrical     Electrical         `json:"electrical"`
	Plumbing       Plumbing           `json:"plumbing"`
	HVAC           HVAC               `json:"hvac"`
	FireProtection FireProtection     `json:"fire_protection"`
	Drawings       map[string]Drawing `json:"drawings"`
	Specifications MEPSpecifications  `json:"specifications"`
}
