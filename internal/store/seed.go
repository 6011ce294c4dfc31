package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"relief-api/internal/logger"
)

// seedNamespace 用于生成稳定的记录 id，重复执行种子不会产生重复行
var seedNamespace = uuid.MustParse("7f9b6c1e-3d2a-4e51-9a8c-2b6f0d4e8a13")

type seedRow struct {
	name     string
	category Category
	lat, lng float64
	address  string
	phone    string
	hours    string
}

// 多伦多与圭尔夫的初始救助点
var seedRows = []seedRow{
	{"Metro Toronto Convention Centre Emergency Shelter", CategoryShelter, 43.6426, -79.3871, "255 Front St W, Toronto, ON M5V 2W6", "(416) 585-8000", "Open 24/7"},
	{"Covenant House Emergency Shelter", CategoryShelter, 43.6611, -79.3803, "20 Gerrard St E, Toronto, ON M5B 2P3", "(416) 598-4898", "Open 24/7"},
	{"Scarborough Civic Centre Emergency Shelter", CategoryShelter, 43.7731, -79.2578, "150 Borough Dr, Scarborough, ON M1P 4N7", "(416) 396-7301", "Open 24/7"},
	{"North York Shelter", CategoryShelter, 43.7615, -79.4111, "5100 Yonge St, North York, ON M2N 5V7", "(416) 338-0338", "Open 24/7"},
	{"Etobicoke Community Shelter", CategoryShelter, 43.6205, -79.5132, "399 The West Mall, Etobicoke, ON M9C 2Y2", "(416) 394-8500", "Open 24/7"},
	{"Daily Bread Food Bank", CategoryFood, 43.6156, -79.5245, "191 New Toronto St, Toronto, ON M8V 2E7", "(416) 203-0050", "Mon-Fri: 9AM-5PM"},
	{"Second Harvest Food Bank", CategoryFood, 43.7184, -79.3429, "2800 Dufferin St, Toronto, ON M6B 4J7", "(416) 408-2594", "Mon-Fri: 8AM-4PM"},
	{"North York Harvest Food Bank", CategoryFood, 43.7695, -79.4150, "1647 Sheppard Ave W, North York, ON M3M 2X2", "(416) 635-7771", "Tue, Thu: 10AM-2PM"},
	{"Scarborough Food Security Initiative", CategoryFood, 43.7731, -79.2578, "150 Borough Dr, Scarborough, ON M1P 4N7", "(416) 396-4636", "Mon, Wed, Fri: 9AM-4PM"},
	{"Toronto General Hospital Emergency", CategoryMedical, 43.6593, -79.3876, "200 Elizabeth St, Toronto, ON M5G 2C4", "(416) 340-4800", "Open 24/7"},
	{"St. Michael's Hospital Emergency", CategoryMedical, 43.6533, -79.3773, "30 Bond St, Toronto, ON M5B 1W8", "(416) 360-4000", "Open 24/7"},
	{"Sunnybrook Health Sciences Centre", CategoryMedical, 43.7243, -79.3776, "2075 Bayview Ave, Toronto, ON M4N 3M5", "(416) 480-6100", "Open 24/7"},
	{"Scarborough Health Network - General Campus", CategoryMedical, 43.7295, -79.2318, "3050 Lawrence Ave E, Scarborough, ON M1P 2V5", "(416) 438-2911", "Open 24/7"},
	{"William Osler Health Centre - Etobicoke", CategoryMedical, 43.6608, -79.5599, "101 Humber College Blvd, Etobicoke, ON M9V 1R8", "(416) 494-2120", "Open 24/7"},
	{"Water Distribution Center - Nathan Phillips Square", CategoryWater, 43.6534, -79.3839, "100 Queen St W, Toronto, ON M5H 2N2", "(416) 392-7111", "Daily: 8AM-8PM"},
	{"Emergency Water Station - High Park", CategoryWater, 43.6465, -79.4637, "1873 Bloor St W, Toronto, ON M6R 2Z3", "(416) 392-1111", "Daily: 7AM-9PM"},
	{"Scarborough Water Distribution Point", CategoryWater, 43.7731, -79.2578, "150 Borough Dr, Scarborough, ON M1P 4N7", "(416) 396-7301", "Daily: 8AM-8PM"},
	{"North York Emergency Water Station", CategoryWater, 43.7615, -79.4111, "5100 Yonge St, North York, ON M2N 5V7", "(416) 395-7777", "Daily: 8AM-8PM"},
	{"University of Guelph Emergency Shelter", CategoryShelter, 43.5321, -80.2258, "50 Stone Rd E, Guelph, ON N1G 2W1", "(519) 824-4120", "Open 24/7"},
	{"Guelph City Hall Emergency Center", CategoryShelter, 43.5448, -80.2482, "1 Carden St, Guelph, ON N1H 3A1", "(519) 822-1260", "Open 24/7"},
	{"Guelph Food Bank", CategoryFood, 43.5460, -80.2493, "100 Crimea St, Guelph, ON N1H 2Y6", "(519) 763-3663", "Mon-Fri: 9AM-4PM"},
	{"Chalmers Community Services Centre Food Bank", CategoryFood, 43.5390, -80.2561, "97 Yarmouth St, Guelph, ON N1H 4G3", "(519) 824-3773", "Tue, Thu: 10AM-2PM"},
	{"Guelph General Hospital", CategoryMedical, 43.5526, -80.2336, "115 Delhi St, Guelph, ON N1E 4J4", "(519) 822-5350", "Open 24/7"},
	{"St. Joseph's Health Centre Guelph", CategoryMedical, 43.5284, -80.2418, "100 Westmount Rd, Guelph, ON N1H 5H8", "(519) 824-6000", "Open 24/7"},
	{"Exhibition Park Emergency Water Station", CategoryWater, 43.5412, -80.2367, "Victoria Rd S, Guelph, ON N1E 6T8", "(519) 822-1260", "Daily: 8AM-8PM"},
	{"Riverside Park Water Distribution", CategoryWater, 43.5388, -80.2619, "355 Woolwich St, Guelph, ON N1H 3W6", "(519) 822-1260", "Daily: 8AM-8PM"},
}

// SeedID：按名称与地址派生的确定性 id
func SeedID(name, address string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name+"|"+address)).String()
}

// SeedRecords 返回初始数据集，lastUpdated 统一为 at
func SeedRecords(at time.Time) []Resource {
	out := make([]Resource, 0, len(seedRows))
	for _, r := range seedRows {
		phone, hours := r.phone, r.hours
		out = append(out, Resource{
			ID:          SeedID(r.name, r.address),
			Name:        r.name,
			Category:    r.category,
			Latitude:    r.lat,
			Longitude:   r.lng,
			Address:     r.address,
			Phone:       &phone,
			Hours:       &hours,
			LastUpdated: at.UTC(),
		})
	}
	return out
}

// Seed：仓储为空时写入初始数据；返回写入条数（非空时为 0）
func Seed(ctx context.Context, repo Repository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.L().Info("seed_skipped", "existing", n)
		return 0, nil
	}
	recs := SeedRecords(time.Now())
	if err := repo.Insert(ctx, recs); err != nil {
		return 0, err
	}
	logger.L().Info("seed_done", "count", len(recs))
	return len(recs), nil
}
