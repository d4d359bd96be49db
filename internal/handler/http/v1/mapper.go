package v1

import (
	"time"

	"github.com/shenikar/tourist_safety/internal/models"
)

// DTOToLocationReport преобразует DTO отчета в модель
func DTOToLocationReport(dto LocationReportRequest) *models.LocationReport {
	report := &models.LocationReport{
		SubjectID:    dto.SubjectID,
		Point:        models.Point{Longitude: dto.Longitude, Latitude: dto.Latitude},
		Altitude:     dto.Altitude,
		Accuracy:     dto.Accuracy,
		Source:       models.SourceKind(dto.Source),
		BatteryLevel: dto.BatteryLevel,
		Health:       dtoToHealth(dto.Health),
	}
	if dto.Timestamp != nil {
		report.Timestamp = *dto.Timestamp
	}
	return report
}

// ModelToLocationReportResponse преобразует модель отчета в DTO
func ModelToLocationReportResponse(r models.LocationReport) LocationReportResponse {
	return LocationReportResponse{
		ID:           r.ID,
		SubjectID:    r.SubjectID,
		Latitude:     r.Point.Latitude,
		Longitude:    r.Point.Longitude,
		Timestamp:    r.Timestamp,
		Source:       string(r.Source),
		BatteryLevel: r.BatteryLevel,
		Health:       healthToDTO(r.Health),
	}
}

// ModelToAlertResponse преобразует модель алерта в DTO
func ModelToAlertResponse(a models.Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID,
		SubjectID:      a.SubjectID,
		Cause:          string(a.Cause),
		CauseKey:       a.CauseKey,
		Severity:       string(a.Severity),
		Latitude:       a.Point.Latitude,
		Longitude:      a.Point.Longitude,
		Description:    a.Description,
		Status:         string(a.Status),
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		CreatedAt:      a.CreatedAt,
		ResolvedAt:     a.ResolvedAt,
		Metadata:       a.Metadata,
	}
}

// ModelsToAlertResponses преобразует список алертов; пустой список сериализуется как []
func ModelsToAlertResponses(alerts []models.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, ModelToAlertResponse(a))
	}
	return out
}

// ModelToEmergencyResponse преобразует модель ЧС в DTO
func ModelToEmergencyResponse(e models.Emergency) EmergencyResponse {
	return EmergencyResponse{
		ID:                 e.ID,
		SubjectID:          e.SubjectID,
		Kind:               string(e.Kind),
		Latitude:           e.Point.Latitude,
		Longitude:          e.Point.Longitude,
		Status:             string(e.Status),
		DeviceID:           e.DeviceID,
		NearestResponderID: e.NearestResponderID,
		EFIRNumber:         e.EFIRNumber,
		CreatedAt:          e.CreatedAt,
		DispatchedAt:       e.DispatchedAt,
		ResolvedAt:         e.ResolvedAt,
	}
}

// DTOToZoneModel преобразует DTO зоны в модель
func DTOToZoneModel(dto ZoneRequest) *models.Zone {
	zone := &models.Zone{
		Name:         dto.Name,
		Kind:         models.ZoneKind(dto.Kind),
		Polygon:      make([]models.Point, 0, len(dto.Polygon)),
		RiskLevel:    dto.RiskLevel,
		AlertMessage: dto.AlertMessage,
	}
	for _, p := range dto.Polygon {
		zone.Polygon = append(zone.Polygon, models.Point{Longitude: p.Longitude, Latitude: p.Latitude})
	}
	if dto.ActiveHours != nil {
		zone.ActiveHours = &models.ActiveHours{
			Start:    dto.ActiveHours.Start,
			End:      dto.ActiveHours.End,
			Timezone: dto.ActiveHours.Timezone,
		}
	}
	return zone
}

// ModelToZoneResponse преобразует модель зоны в DTO
func ModelToZoneResponse(z models.Zone) ZoneResponse {
	resp := ZoneResponse{
		ID:           z.ID,
		Name:         z.Name,
		Kind:         string(z.Kind),
		Polygon:      make([]PointDTO, 0, len(z.Polygon)),
		RiskLevel:    z.RiskLevel,
		AlertMessage: z.AlertMessage,
		CreatedAt:    z.CreatedAt,
		UpdatedAt:    z.UpdatedAt,
	}
	for _, p := range z.Polygon {
		resp.Polygon = append(resp.Polygon, PointDTO{Latitude: p.Latitude, Longitude: p.Longitude})
	}
	if z.ActiveHours != nil {
		resp.ActiveHours = &ActiveHoursDTO{
			Start:    z.ActiveHours.Start,
			End:      z.ActiveHours.End,
			Timezone: z.ActiveHours.Timezone,
		}
	}
	return resp
}

func modelsToZoneResponses(zones []models.Zone) []ZoneResponse {
	out := make([]ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, ModelToZoneResponse(z))
	}
	return out
}

// DTOToDeviceModel преобразует DTO регистрации в модель устройства
func DTOToDeviceModel(dto DeviceRegisterRequest) *models.Device {
	return &models.Device{
		DeviceID:        dto.DeviceID,
		SubjectID:       dto.SubjectID,
		Kind:            models.DeviceKind(dto.Kind),
		FirmwareVersion: dto.FirmwareVersion,
	}
}

// ModelToDeviceResponse преобразует модель устройства в DTO
func ModelToDeviceResponse(d models.Device) DeviceResponse {
	resp := DeviceResponse{
		DeviceID:        d.DeviceID,
		SubjectID:       d.SubjectID,
		Kind:            string(d.Kind),
		Status:          string(d.Status),
		FirmwareVersion: d.FirmwareVersion,
		BatteryLevel:    d.BatteryLevel,
		Health:          healthToDTO(d.Health),
		LastHeartbeat:   d.LastHeartbeat,
	}
	if d.Point != nil {
		lat, lon := d.Point.Latitude, d.Point.Longitude
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	return resp
}

// ModelToSafetyScoreResponse преобразует оценку безопасности в DTO
func ModelToSafetyScoreResponse(s models.SafetyScore) SafetyScoreResponse {
	resp := SafetyScoreResponse{
		SubjectID:    s.SubjectID,
		CurrentScore: s.CurrentScore,
		Factors: ScoreFactorsDTO{
			LocationRisk: s.Factors.LocationRisk,
			TimeRisk:     s.Factors.TimeRisk,
			BehaviorRisk: s.Factors.BehaviorRisk,
			WeatherRisk:  s.Factors.WeatherRisk,
		},
		AlertsCount: s.AlertsCount,
		History:     make([]ScorePointDTO, 0, len(s.History)),
		LastUpdated: s.LastUpdated,
	}
	for _, p := range s.History {
		resp.History = append(resp.History, ScorePointDTO{Score: p.Score, Timestamp: p.Timestamp})
	}
	return resp
}

// ModelToAnomalyResponse преобразует аномалию в DTO
func ModelToAnomalyResponse(a models.Anomaly) AnomalyResponse {
	return AnomalyResponse{
		Kind:         string(a.Kind),
		Severity:     string(a.Severity),
		Description:  a.Description,
		Latitude:     a.Point.Latitude,
		Longitude:    a.Point.Longitude,
		ReportsCount: len(a.Reports),
	}
}

func dtoToHealth(dto *HealthMetricsDTO) *models.HealthMetrics {
	if dto == nil {
		return nil
	}
	return &models.HealthMetrics{HeartRate: dto.HeartRate, BodyTemperature: dto.BodyTemperature, SpO2: dto.SpO2}
}

func healthToDTO(h *models.HealthMetrics) *HealthMetricsDTO {
	if h == nil {
		return nil
	}
	return &HealthMetricsDTO{HeartRate: h.HeartRate, BodyTemperature: h.BodyTemperature, SpO2: h.SpO2}
}

func pointOf(lat, lon float64) models.Point {
	return models.Point{Longitude: lon, Latitude: lat}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
