package config

// TuningConfig is the root config for tuning.json.
// All rates are per frame unit (dt = 1.0 is one 60th of a second) unless noted.
type TuningConfig struct {
	Display     DisplayConfig     `json:"display"`
	Player      PlayerConfig      `json:"player"`
	Movement    MovementConfig    `json:"movement"`
	Jump        JumpConfig        `json:"jump"`
	Physics     PhysicsSettings   `json:"physics"`
	Destruction DestructionConfig `json:"destruction"`
	Particles   ParticlesConfig   `json:"particles"`
	Feedback    FeedbackConfig    `json:"feedback"`
	Levels      []string          `json:"levels"` // Played in order, wrapping
}

type DisplayConfig struct {
	ScreenWidth  int     `json:"screenWidth"`
	ScreenHeight int     `json:"screenHeight"`
	Scale        int     `json:"scale"`
	Framerate    int     `json:"framerate"`
	MaxFrameDT   float64 `json:"maxFrameDT"` // Upper bound on a single frame's dt
}

type PlayerConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

type MovementConfig struct {
	RunSpeed        float64 `json:"runSpeed"` // Target speed while a direction is held
	Acceleration    float64 `json:"acceleration"`
	Deceleration    float64 `json:"deceleration"`
	Friction        float64 `json:"friction"` // Grounded decay factor, applied as friction^dt
	AirAcceleration float64 `json:"airAcceleration"`
	AirDeceleration float64 `json:"airDeceleration"`
	AirResistance   float64 `json:"airResistance"` // Airborne decay factor, applied as airResistance^dt
	MaxSpeed        float64 `json:"maxSpeed"`
	StopEpsilon     float64 `json:"stopEpsilon"` // Below this speed deceleration snaps to zero
}

type JumpConfig struct {
	Power            float64 `json:"power"`            // Negative is up
	GroundEpsilon    float64 `json:"groundEpsilon"`    // Grounded while Falling < this
	AirborneSentinel float64 `json:"airborneSentinel"` // Falling value after a jump
}

type PhysicsSettings struct {
	Gravity          float64 `json:"gravity"`
	MaxFallSpeed     float64 `json:"maxFallSpeed"`
	RespawnDepth     float64 `json:"respawnDepth"`     // Pixels below the lowest tile row before respawn
	LandingDustSpeed float64 `json:"landingDustSpeed"` // Impact speed that spawns smoke
}

type DestructionConfig struct {
	BaseTime      float64  `json:"baseTime"` // Seconds
	Stagger       float64  `json:"stagger"`  // Seconds per enumeration index
	KickupMin     int      `json:"kickupMin"`
	KickupMax     int      `json:"kickupMax"`
	KickupSizeMin float64  `json:"kickupSizeMin"`
	KickupSizeMax float64  `json:"kickupSizeMax"`
	KickupSpeed   float64  `json:"kickupSpeed"` // Max outward speed
	SparkMin      int      `json:"sparkMin"`
	SparkMax      int      `json:"sparkMax"`
	SparkSpeedMin float64  `json:"sparkSpeedMin"`
	SparkSpeedMax float64  `json:"sparkSpeedMax"`
	SpinnyEvery   int      `json:"spinnyEvery"` // Every Nth spark is spinny; 0 disables
	ScreenShake   float64  `json:"screenShake"` // Minimum shake magnitude per destroyed tile
	Palette       []string `json:"palette"`     // Hex colors for kickup debris
}

type ParticlesConfig struct {
	Kickup KickupConfig `json:"kickup"`
	Spark  SparkConfig  `json:"spark"`
	Smoke  SmokeConfig  `json:"smoke"`
}

type KickupConfig struct {
	Gravity     float64 `json:"gravity"`
	Shrink      float64 `json:"shrink"`
	Restitution float64 `json:"restitution"`
	Damping     float64 `json:"damping"`
}

type SparkConfig struct {
	TurnRate         float64 `json:"turnRate"`
	Friction         float64 `json:"friction"`
	Gravity          float64 `json:"gravity"`
	TerminalVelocity float64 `json:"terminalVelocity"`
	Decay            float64 `json:"decay"`
	Scale            float64 `json:"scale"`
}

type SmokeConfig struct {
	Damping     float64 `json:"damping"`
	Duration    float64 `json:"duration"`
	EaseDivisor float64 `json:"easeDivisor"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`
}

type FeedbackConfig struct {
	ShakeDecay       float64 `json:"shakeDecay"`  // Shake magnitude lost per frame unit
	CameraLerpX      float64 `json:"cameraLerpX"` // Fraction of the gap closed per frame unit
	CameraLerpY      float64 `json:"cameraLerpY"`
	TransitionFrames float64 `json:"transitionFrames"` // Fade length between levels
}

// DefaultTuning returns the built-in tuning values
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
			MaxFrameDT:   3,
		},
		Player: PlayerConfig{
			Width:  7,
			Height: 12,
			SpawnX: 50,
			SpawnY: 10,
		},
		Movement: MovementConfig{
			RunSpeed:        1.5,
			Acceleration:    0.3,
			Deceleration:    0.25,
			Friction:        0.9,
			AirAcceleration: 0.15,
			AirDeceleration: 0.05,
			AirResistance:   0.98,
			MaxSpeed:        2,
			StopEpsilon:     0.05,
		},
		Jump: JumpConfig{
			Power:            -3,
			GroundEpsilon:    5,
			AirborneSentinel: 30,
		},
		Physics: PhysicsSettings{
			Gravity:          0.1,
			MaxFallSpeed:     4,
			RespawnDepth:     160,
			LandingDustSpeed: 2,
		},
		Destruction: DestructionConfig{
			BaseTime:      0.4,
			Stagger:       0.05,
			KickupMin:     10,
			KickupMax:     20,
			KickupSizeMin: 9,
			KickupSizeMax: 10,
			KickupSpeed:   1.5,
			SparkMin:      10,
			SparkMax:      20,
			SparkSpeedMin: 0.5,
			SparkSpeedMax: 2,
			SpinnyEvery:   3,
			ScreenShake:   6,
			Palette:       []string{"#e8eef7", "#c0d0f0", "#9fb4d9", "#ffffff"},
		},
		Particles: ParticlesConfig{
			Kickup: KickupConfig{
				Gravity:     0.1,
				Shrink:      0.1,
				Restitution: 0.8,
				Damping:     0.999,
			},
			Spark: SparkConfig{
				TurnRate:         0.02,
				Friction:         0.975,
				Gravity:          0.02,
				TerminalVelocity: 1,
				Decay:            0.1,
				Scale:            1,
			},
			Smoke: SmokeConfig{
				Damping:     0.989,
				Duration:    25,
				EaseDivisor: 15,
				Size:        12,
				Color:       "#b4b4c8",
			},
		},
		Feedback: FeedbackConfig{
			ShakeDecay:       1,
			CameraLerpX:      0.1,
			CameraLerpY:      0.05,
			TransitionFrames: 30,
		},
		Levels: []string{"0", "1"},
	}
}
