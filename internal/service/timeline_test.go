package service

import (
	"testing"
	"time"

	"order-tracking-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildTimelineMergesAndSorts(t *testing.T) {
	history := []model.OriginEntry{
		{At: "2024-01-01T10:00:00Z", Action: "order_placed", By: "customer"},
		{At: "2024-01-01T10:20:00Z", Action: "status_changed", By: "kitchen"},
	}
	events := []bson.M{
		{"event": "order_created", "timestamp": "2024-01-01T10:05:00Z", "total": 25.5},
		{"event": "status_updated", "timestamp": "2024-01-01T10:15:00Z", "old_status": "created", "new_status": "preparing"},
		{"event": "order_cancelled", "timestamp": "2024-01-01T10:30:00Z"},
	}

	timeline := BuildTimeline(history, events)

	if len(timeline) != 5 {
		t.Fatalf("timeline tiene %d entradas, want 5", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timestampOf(timeline[i-1]) > timestampOf(timeline[i]) {
			t.Errorf("timeline desordenado en %d: %q > %q", i, timestampOf(timeline[i-1]), timestampOf(timeline[i]))
		}
	}

	wantSources := []string{"order_service", "status_service", "status_service", "order_service", "status_service"}
	for i, want := range wantSources {
		if timeline[i]["source"] != want {
			t.Errorf("entrada %d: source = %v, want %s", i, timeline[i]["source"], want)
		}
	}
}

func TestBuildTimelineEventDetails(t *testing.T) {
	events := []bson.M{
		{"event": "status_updated", "timestamp": "2024-01-01T10:00:00Z", "old_status": "created", "new_status": "ready"},
	}

	timeline := BuildTimeline(nil, events)

	entry := timeline[0]
	if entry["event"] != "status_updated" {
		t.Errorf("event = %v", entry["event"])
	}
	details := entry["details"].(bson.M)
	if details["old_status"] != "created" || details["new_status"] != "ready" {
		t.Errorf("details = %#v", details)
	}
	if _, ok := details["timestamp"]; ok {
		t.Error("details no debe repetir timestamp")
	}
	if _, ok := entry["action"]; ok {
		t.Error("una entrada de eventos no debe tener campos del otro stream")
	}
}

func TestBuildTimelineMissingTimestampSortsFirst(t *testing.T) {
	history := []model.OriginEntry{
		{At: "2024-01-01T10:00:00Z", Action: "order_placed"},
	}
	events := []bson.M{
		{"event": "order_created"}, // sin timestamp
	}

	timeline := BuildTimeline(history, events)

	if timeline[0]["source"] != "status_service" {
		t.Errorf("la entrada sin timestamp debería ordenar primero, got %v", timeline[0]["source"])
	}
}

func TestBuildTimelineTieBreakKeepsOriginFirst(t *testing.T) {
	ts := "2024-01-01T10:00:00Z"
	history := []model.OriginEntry{{At: ts, Action: "order_placed"}}
	events := []bson.M{{"event": "order_created", "timestamp": ts}}

	timeline := BuildTimeline(history, events)

	if timeline[0]["source"] != "order_service" || timeline[1]["source"] != "status_service" {
		t.Errorf("empate mal resuelto: %v, %v", timeline[0]["source"], timeline[1]["source"])
	}
}

func TestStatisticsComputesTotalMinutes(t *testing.T) {
	o := &model.Order{
		OrderID:   "O1",
		Status:    "delivered",
		CreatedAt: "2024-01-01T10:00:00Z",
		UpdatedAt: "2024-01-01T11:30:00Z",
	}
	timeline := []bson.M{
		{"timestamp": "2024-01-01T10:00:00Z", "action": "order_placed"},
		{"timestamp": "2024-01-01T10:20:00Z", "action": "status_changed"},
		{"timestamp": "2024-01-01T10:40:00Z", "action": "status_changed_manual"},
		{"timestamp": "2024-01-01T11:00:00Z", "event": "status_updated"},
	}

	stats := Statistics(timeline, o)

	if stats["tiempo_total_minutos"] != 90.0 {
		t.Errorf("tiempo_total_minutos = %v, want 90", stats["tiempo_total_minutos"])
	}
	if stats["eventos_totales"] != 4 {
		t.Errorf("eventos_totales = %v, want 4", stats["eventos_totales"])
	}
	// el match por substring también cuenta status_changed_manual;
	// la entrada de eventos no tiene action y no cuenta
	if stats["cambios_estado"] != 2 {
		t.Errorf("cambios_estado = %v, want 2", stats["cambios_estado"])
	}
	if stats["estado_actual"] != "delivered" {
		t.Errorf("estado_actual = %v", stats["estado_actual"])
	}
}

func TestStatisticsEmptyTimeline(t *testing.T) {
	stats := Statistics(nil, &model.Order{OrderID: "O1"})
	if len(stats) != 0 {
		t.Errorf("timeline vacío debería dar estadísticas vacías, got %#v", stats)
	}
}

func TestStatisticsMissingUpdatedAt(t *testing.T) {
	o := &model.Order{OrderID: "O1", Status: "created", CreatedAt: "2024-01-01T10:00:00Z"}
	timeline := []bson.M{{"timestamp": "2024-01-01T10:00:00Z", "action": "order_placed"}}

	stats := Statistics(timeline, o)

	if stats["tiempo_total_minutos"] != 0.0 {
		t.Errorf("tiempo_total_minutos = %v, want 0", stats["tiempo_total_minutos"])
	}
	if _, ok := stats["error"]; ok {
		t.Error("un campo ausente no es un error de cálculo")
	}
}

func TestStatisticsMalformedTimestamps(t *testing.T) {
	o := &model.Order{
		OrderID:   "O1",
		CreatedAt: "esto no es una fecha",
		UpdatedAt: "2024-01-01T11:00:00Z",
	}
	timeline := []bson.M{{"timestamp": "2024-01-01T10:00:00Z"}}

	stats := Statistics(timeline, o)

	if stats["error"] != statsError {
		t.Errorf("want marcador de error, got %#v", stats)
	}
}

func TestWaitMinutes(t *testing.T) {
	created := time.Now().UTC().Add(-120 * time.Minute).Format(time.RFC3339)
	got := WaitMinutes(created)
	if got < 119 || got > 121 {
		t.Errorf("WaitMinutes = %v, want ≈120", got)
	}
}

func TestWaitMinutesUnparsable(t *testing.T) {
	if got := WaitMinutes(""); got != 0 {
		t.Errorf("WaitMinutes(\"\") = %v, want 0", got)
	}
	if got := WaitMinutes("ayer"); got != 0 {
		t.Errorf("WaitMinutes(basura) = %v, want 0", got)
	}
}

func TestCountSteps(t *testing.T) {
	history := []model.OriginEntry{
		{Action: "order_placed"},
		{Action: "status_changed"},
		{Action: "status_changed_by_admin"},
		{Action: "note_added"},
	}
	if got := CountSteps(history); got != 2 {
		t.Errorf("CountSteps = %d, want 2", got)
	}
}

func TestDashboardStatisticsEmpty(t *testing.T) {
	stats := DashboardStatistics(nil)

	if stats["total_pedidos"] != 0 {
		t.Errorf("total_pedidos = %v, want 0", stats["total_pedidos"])
	}
	porEstado := stats["por_estado"].(bson.M)
	if len(porEstado) != 0 {
		t.Errorf("por_estado = %#v, want vacío", porEstado)
	}
	estados := stats["estados_disponibles"].([]string)
	if len(estados) != 6 {
		t.Errorf("estados_disponibles tiene %d, want 6", len(estados))
	}
}

func TestDashboardStatisticsAggregates(t *testing.T) {
	pedidos := []bson.M{
		{"status": "created", "tiempo_espera_minutos": 10.0, "total": 10.25},
		{"status": "created", "tiempo_espera_minutos": 30.0, "total": 5.05},
		{"status": "preparing", "tiempo_espera_minutos": 20.0, "total": 4.70},
	}

	stats := DashboardStatistics(pedidos)

	if stats["total_pedidos"] != 3 {
		t.Errorf("total_pedidos = %v", stats["total_pedidos"])
	}
	porEstado := stats["por_estado"].(bson.M)
	if porEstado["created"] != 2 || porEstado["preparing"] != 1 {
		t.Errorf("por_estado = %#v", porEstado)
	}
	if stats["tiempo_espera_promedio"] != 20.0 {
		t.Errorf("tiempo_espera_promedio = %v, want 20", stats["tiempo_espera_promedio"])
	}
	if stats["pedido_mas_antiguo_minutos"] != 30.0 {
		t.Errorf("pedido_mas_antiguo_minutos = %v, want 30", stats["pedido_mas_antiguo_minutos"])
	}
	// la suma en decimal evita el 19.999999 de float
	if stats["total_ventas"] != 20.0 {
		t.Errorf("total_ventas = %v, want 20", stats["total_ventas"])
	}
	if len(stats["estados_disponibles"].([]string)) != 6 {
		t.Error("estados_disponibles debe venir siempre completo")
	}
}
