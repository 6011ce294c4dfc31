package postal

import "relief-api/internal/geo"

// 多伦多 FSA+LDU 映射，仅以去空格形式维护；NewTorontoIndex 同时登记带空格形式
var toronto = map[string]geo.Coordinate{
	"M5H2N2": {Lat: 43.6534, Lng: -79.3839},
	"M5G2C4": {Lat: 43.6593, Lng: -79.3876},
	"M5B1W8": {Lat: 43.6533, Lng: -79.3773},
	"M5V2W6": {Lat: 43.6426, Lng: -79.3871},
	"M8V2E7": {Lat: 43.6156, Lng: -79.5245},
	"M4N3M5": {Lat: 43.7243, Lng: -79.3776},
	"M1P2V5": {Lat: 43.7295, Lng: -79.2318},
	"M1P4N7": {Lat: 43.7731, Lng: -79.2578},
	"M4Y1E5": {Lat: 43.6658, Lng: -79.3831},
	"M4W1A8": {Lat: 43.6795, Lng: -79.3775},
	"M6K2G8": {Lat: 43.6368, Lng: -79.4281},
	"M6H1W3": {Lat: 43.6627, Lng: -79.4281},
	"M6G1B4": {Lat: 43.6579, Lng: -79.4225},
	"M4E2E4": {Lat: 43.6763, Lng: -79.2930},
	"M4K1N2": {Lat: 43.6795, Lng: -79.3520},
	"M4L3P5": {Lat: 43.6689, Lng: -79.3155},
	"M4M2Y6": {Lat: 43.6595, Lng: -79.3400},
	"M4C5L3": {Lat: 43.6953, Lng: -79.3183},
	"M5A2N1": {Lat: 43.6542, Lng: -79.3606},
	"M5R1C8": {Lat: 43.6727, Lng: -79.4056},
	"M5S2V1": {Lat: 43.6627, Lng: -79.3957},
	"M5T1R8": {Lat: 43.6532, Lng: -79.4000},
	"M6J2K3": {Lat: 43.6479, Lng: -79.4197},
	"M6P1A6": {Lat: 43.6616, Lng: -79.4647},
	"M6R2E9": {Lat: 43.6489, Lng: -79.4565},
	"M6S1N8": {Lat: 43.6515, Lng: -79.4844},
	"M9A1B6": {Lat: 43.6678, Lng: -79.5322},
	"M9B6K5": {Lat: 43.6509, Lng: -79.5547},
	"M9C1B9": {Lat: 43.6435, Lng: -79.5772},
	"M1K1N1": {Lat: 43.7279, Lng: -79.2620},
	"M1L4L9": {Lat: 43.7111, Lng: -79.2845},
	"M1M2J5": {Lat: 43.7247, Lng: -79.2306},
	"M1N2R1": {Lat: 43.6922, Lng: -79.2644},
	"M2J4S6": {Lat: 43.7785, Lng: -79.3465},
	"M2M4J1": {Lat: 43.7891, Lng: -79.4088},
	"M2N5Y7": {Lat: 43.7701, Lng: -79.4084},
	"M3A1X7": {Lat: 43.7532, Lng: -79.3296},
	"M3B2T5": {Lat: 43.7459, Lng: -79.3522},
	"M3C1S2": {Lat: 43.7258, Lng: -79.3406},
	"M3H5T4": {Lat: 43.7543, Lng: -79.4422},
	"M3J1P3": {Lat: 43.7679, Lng: -79.4872},
	"M3K1Y5": {Lat: 43.7374, Lng: -79.4647},
	"M3L1S4": {Lat: 43.7390, Lng: -79.5069},
	"M3M1J4": {Lat: 43.7284, Lng: -79.4956},
	"M3N1W5": {Lat: 43.7616, Lng: -79.5209},
	"M4A2W1": {Lat: 43.7253, Lng: -79.3155},
	"M4B1Y5": {Lat: 43.7063, Lng: -79.3094},
	"M4G1N6": {Lat: 43.7090, Lng: -79.3632},
	"M4H1C9": {Lat: 43.7053, Lng: -79.3493},
	"M4J1W9": {Lat: 43.6852, Lng: -79.3381},
	"M4P1E4": {Lat: 43.7127, Lng: -79.3901},
	"M4R1X4": {Lat: 43.7153, Lng: -79.4056},
	"M4S1S1": {Lat: 43.7043, Lng: -79.3887},
	"M4T1A1": {Lat: 43.6895, Lng: -79.3831},
	"M4V1R2": {Lat: 43.6864, Lng: -79.4000},
	"M4X1G6": {Lat: 43.6679, Lng: -79.3676},
	"M5C2K3": {Lat: 43.6514, Lng: -79.3754},
	"M5E1A1": {Lat: 43.6447, Lng: -79.3733},
	"M5J2R9": {Lat: 43.6408, Lng: -79.3817},
	"M5K1B7": {Lat: 43.6471, Lng: -79.3815},
	"M5L1R5": {Lat: 43.6481, Lng: -79.3798},
	"M5M2K2": {Lat: 43.7332, Lng: -79.4197},
	"M5N2L7": {Lat: 43.7116, Lng: -79.4169},
	"M5P2N7": {Lat: 43.6969, Lng: -79.4112},
	"M6A2E6": {Lat: 43.7184, Lng: -79.4647},
	"M6B2Z8": {Lat: 43.7090, Lng: -79.4450},
	"M6C2L8": {Lat: 43.6937, Lng: -79.4281},
	"M6E2M1": {Lat: 43.6890, Lng: -79.4534},
	"M6L2B9": {Lat: 43.7137, Lng: -79.4900},
	"M6M2W5": {Lat: 43.6911, Lng: -79.4760},
	"M6N2J3": {Lat: 43.6731, Lng: -79.4872},
}

// NewTorontoIndex：构建默认区域索引，键为 "M5H2N2" 与 "M5H 2N2" 两种写法
func NewTorontoIndex() *Index {
	m := make(map[string]geo.Coordinate, len(toronto)*2)
	for k, c := range toronto {
		m[k] = c
		if len(k) == 6 {
			m[k[:3]+" "+k[3:]] = c
		}
	}
	return &Index{m: m}
}
