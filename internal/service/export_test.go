package service

import "time"

func (s *AlertService) SetClock(now func() time.Time)      { s.now = now }
func (s *ThreatService) SetClock(now func() time.Time)     { s.now = now }
func (s *ReportService) SetClock(now func() time.Time)     { s.now = now }
func (s *PredictionService) SetClock(now func() time.Time) { s.now = now }
func (s *LocationService) SetClock(now func() time.Time)   { s.now = now }
