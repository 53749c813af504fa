package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/domain"
)

// Renderer serves the embedded console templates through echo.
type Renderer struct {
	t *template.Template
}

func NewRenderer() *Renderer {
	t := template.New("console").Funcs(template.FuncMap{
		// Option labels come out of the composer already escaped; rendering
		// them as-is prevents double escaping.
		"safe": func(s string) template.HTML { return template.HTML(s) },
		// Row action buttons follow the appointment state machine.
		"completable": func(s domain.AppointmentStatus) bool { return s.CanTransitionTo(domain.StatusCompleted) },
		"cancellable": func(s domain.AppointmentStatus) bool { return s.CanTransitionTo(domain.StatusCancelled) },
	})
	template.Must(t.New("page").Parse(pageTemplate))
	template.Must(t.New("booking-form").Parse(bookingFormTemplate))
	return &Renderer{t: t}
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

const bookingFormTemplate = `<h2>New appointment</h2>
<form method="post" action="/appointments" data-modal-form>
    <input type="hidden" name="token" value="{{.Token}}">
    {{if .ClientBound}}<input type="hidden" name="clientId" value="{{.BoundClientID}}">
    {{else}}<div class="form-group">
        <label>Client:</label>
        <select name="clientId" required>
            <option value="">Select a client</option>
            {{range .Clients}}<option value="{{.Value}}">{{safe .Label}}</option>
            {{end}}</select>
    </div>
    {{end}}<div class="form-group">
        <label>Master:</label>
        <select name="masterId" required>
            <option value="">Select a master</option>
            {{range .Masters}}<option value="{{.Value}}">{{safe .Label}}</option>
            {{end}}</select>
    </div>
    <div class="form-group">
        <label>Service:</label>
        <select name="serviceId" required>
            <option value="">Select a service</option>
            {{range .Services}}<option value="{{.Value}}">{{safe .Label}}</option>
            {{end}}</select>
    </div>
    <div class="form-group">
        <label>Date:</label>
        <input type="date" name="date" value="{{.Date}}" required>
    </div>
    <div class="form-group">
        <label>Time:</label>
        <input type="time" name="time" value="{{.Time}}" required>
    </div>
    <div class="form-actions">
        <button type="button" class="btn btn-secondary" data-modal-close>Cancel</button>
        <button type="submit" class="btn btn-primary">Create appointment</button>
    </div>
</form>`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Salon Console</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',Roboto,sans-serif;background:#f5f5f5;color:#333;line-height:1.6}
.hdr{background:#4c5a9c;color:#fff;padding:14px 20px;display:flex;justify-content:space-between;align-items:center}
.hdr h1{font-size:18px;font-weight:600}
.hdr span{font-size:13px;opacity:.85}
.tabs{display:flex;border-bottom:2px solid #e5e7eb;background:#fff;padding:0 16px}
.tab{padding:12px 20px;font-size:14px;font-weight:500;color:#666;text-decoration:none;border-bottom:2px solid transparent;margin-bottom:-2px}
.tab.active{color:#4c5a9c;border-bottom-color:#4c5a9c}
.content{max-width:1000px;margin:0 auto;padding:20px}
.toolbar{display:flex;gap:8px;margin-bottom:14px;flex-wrap:wrap}
table{width:100%;background:#fff;border-collapse:collapse;border-radius:8px;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,.1)}
th,td{padding:10px 12px;text-align:left;font-size:14px;border-bottom:1px solid #eee}
th{background:#fafafa;font-weight:600}
.btn{display:inline-block;padding:8px 14px;border-radius:6px;border:none;cursor:pointer;font-size:13px;background:#e5e7eb;color:#374151;text-decoration:none}
.btn-primary{background:#4c5a9c;color:#fff}
.btn-danger{background:#fff;color:#ef4444;border:1px solid #ef4444}
.form-group{margin-bottom:14px}
.form-group label{display:block;font-size:13px;font-weight:500;margin-bottom:4px;color:#555}
.form-group input,.form-group select{width:100%;padding:8px 12px;border:1px solid #ddd;border-radius:6px;font-size:14px}
.form-actions{display:flex;gap:8px;justify-content:flex-end;margin-top:16px}
.stats{display:flex;gap:16px;margin-bottom:18px;flex-wrap:wrap}
.stat{background:#fff;border-radius:8px;padding:12px 18px;box-shadow:0 1px 3px rgba(0,0,0,.1);font-size:13px;color:#666}
.stat b{display:block;font-size:18px;color:#333}
#modal{display:none;position:fixed;inset:0;background:rgba(0,0,0,.4)}
#modal .box{background:#fff;border-radius:8px;max-width:480px;margin:60px auto;padding:24px}
</style>
</head>
<body>
<div class="hdr">
    <h1>Salon Console</h1>
    <span>{{if .Session}}{{.Session.Username}} ({{.Session.Role}}){{else}}anonymous{{end}}</span>
</div>
<nav class="tabs">
    {{$active := .Active}}{{range .Tabs}}<a class="tab{{if eq .Key $active}} active{{end}}" href="/?tab={{.Key}}">{{.Title}}</a>{{end}}
</nav>
<div class="content">
    {{if .Stats}}<div class="stats">
        {{range $k, $v := .Stats}}<div class="stat">{{$k}}<b>{{$v}}</b></div>{{end}}
    </div>{{end}}

    {{if eq .Active "services"}}
    <div class="toolbar">
        <a class="btn" href="/export/services/json">Export JSON</a>
        <a class="btn" href="/export/services/csv">Export CSV</a>
    </div>
    <table><tr><th>ID</th><th>Name</th><th>Description</th><th>Price</th><th>Duration</th></tr>
    {{range .Services}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.Price}}</td><td>{{.Duration}} min</td></tr>{{end}}
    </table>
    {{end}}

    {{if eq .Active "masters"}}
    <div class="toolbar">
        <a class="btn" href="/export/masters/json">Export JSON</a>
        <a class="btn" href="/export/masters/csv">Export CSV</a>
    </div>
    <table><tr><th>ID</th><th>Name</th><th>Specialization</th><th>Experience</th><th>Rating</th></tr>
    {{range .Masters}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Specialization}}</td><td>{{.Experience}} yrs</td><td>{{.Rating}}</td></tr>{{end}}
    </table>
    {{end}}

    {{if eq .Active "appointments"}}
    <div class="toolbar">
        <button class="btn btn-primary" data-modal-open="/appointments/new">New appointment</button>
        <a class="btn" href="/export/appointments/json">Export JSON</a>
        <a class="btn" href="/export/appointments/csv">Export CSV</a>
    </div>
    <table><tr><th>ID</th><th>Client</th><th>Master</th><th>Service</th><th>Date</th><th>Time</th><th>Status</th><th></th></tr>
    {{range .Appointments}}<tr>
        <td>{{.ID}}</td><td>{{.ClientID}}</td><td>{{.MasterID}}</td><td>{{.ServiceID}}</td>
        <td>{{.Date}}</td><td>{{.Time}}</td><td>{{.Status}}</td>
        <td>{{if completable .Status}}<form method="post" action="/appointments/{{.ID}}/complete" style="display:inline"><button class="btn">Complete</button></form>{{end}}
            {{if cancellable .Status}}<form method="post" action="/appointments/{{.ID}}/cancel" style="display:inline"><button class="btn btn-danger">Cancel</button></form>{{end}}</td>
    </tr>{{end}}
    </table>
    {{end}}

    {{if eq .Active "users"}}
    <div class="toolbar">
        <a class="btn" href="/export/users/json">Export JSON</a>
        <a class="btn" href="/export/users/csv">Export CSV</a>
    </div>
    <table><tr><th>ID</th><th>Username</th><th>Email</th><th>Phone</th><th>Role</th></tr>
    {{range .Users}}<tr><td>{{.ID}}</td><td>{{.Username}}</td><td>{{.Email}}</td><td>{{.Phone}}</td><td>{{.Role}}</td></tr>{{end}}
    </table>
    {{end}}

    {{if eq .Active "reports"}}
    <div class="toolbar">
        <a class="btn" href="/export/reports/json">Export JSON</a>
        <a class="btn" href="/export/reports/csv">Export CSV</a>
    </div>
    <table><tr><th>ID</th><th>Date</th><th>Clients</th><th>Income</th></tr>
    {{range .Reports}}<tr><td>{{.ID}}</td><td>{{.ReportDate}}</td><td>{{.TotalClients}}</td><td>{{.TotalIncome}}</td></tr>{{end}}
    </table>
    {{end}}
</div>

<div id="modal"><div class="box" id="modal-body"></div></div>
<script>
const modal = document.getElementById('modal');
const modalBody = document.getElementById('modal-body');

function closeModal() { modal.style.display = 'none'; }

document.addEventListener('click', async (e) => {
    const opener = e.target.closest('[data-modal-open]');
    if (opener) {
        const res = await fetch(opener.dataset.modalOpen);
        if (!res.ok) {
            const data = await res.json().catch(() => ({}));
            alert(data.error || 'failed to load form');
            return;
        }
        modalBody.innerHTML = await res.text();
        modal.style.display = 'block';
        return;
    }
    if (e.target.closest('[data-modal-close]') || e.target === modal) closeModal();
});

document.addEventListener('submit', async (e) => {
    const form = e.target.closest('[data-modal-form]');
    if (!form) return;
    e.preventDefault();
    const res = await fetch(form.action, { method: 'POST', body: new URLSearchParams(new FormData(form)) });
    if (!res.ok) {
        const data = await res.json().catch(() => ({}));
        alert(data.error || 'request failed');
        return;
    }
    closeModal();
    const stale = res.headers.get('X-Refresh');
    if (res.redirected || !stale) { location.href = res.url || location.href; return; }
    location.search = '?tab=' + stale;
});
</script>
</body>
</html>`
