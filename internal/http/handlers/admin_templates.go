package handlers

import "html/template"

type dashboardData struct {
	Total       int
	Today       int
	Week        int
	Rows        []leadRow
	UpdatedAt   string
	DownloadURL string
}

type leadRow struct {
	When    string
	Name    string
	Service string
	Email   string
	Phone   string
	Message string
	Status  string
	// Typed as template.URL so the tel: scheme survives the template's
	// URL filter. The values are built from sanitized fields only.
	TelLink      template.URL
	WhatsAppLink template.URL
	MailLink     template.URL
}

var promptTmpl = template.Must(template.New("prompt").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Admin Access - Secure I.T. Services</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 500px; margin: 100px auto; padding: 20px; }
        input[type="password"] { width: 100%; padding: 10px; margin: 10px 0; }
        button { background: #fca21a; color: black; padding: 10px 20px; border: none; cursor: pointer; }
    </style>
</head>
<body>
    <h2>Admin Access Required</h2>
    <form method="GET">
        <input type="password" name="password" placeholder="Enter admin password" required>
        <br><br>
        <button type="submit">Access Leads</button>
    </form>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Leads Dashboard - Secure I.T. Services</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        * { box-sizing: border-box; }
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .header { background: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .stats { display: flex; gap: 20px; margin-bottom: 20px; flex-wrap: wrap; }
        .stat-card { background: #fca21a; color: black; padding: 15px; border-radius: 8px; text-align: center; min-width: 120px; }
        .stat-value { font-size: 24px; font-weight: bold; }
        .table-container { background: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); overflow-x: auto; }
        table { width: 100%; border-collapse: collapse; min-width: 800px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; font-size: 14px; }
        th { background: #f8f9fa; font-weight: bold; position: sticky; top: 0; }
        tr:hover { background: #f8f9fa; }
        .message { max-width: 200px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
        .action-buttons a { display: inline-block; padding: 4px 8px; margin: 2px; border-radius: 4px; text-decoration: none; font-size: 12px; }
        .call-btn { background: #28a745; color: white; }
        .whatsapp-btn { background: #25D366; color: white; }
        .email-btn { background: #007bff; color: white; }
        .footer { margin-top: 20px; text-align: center; color: #666; font-size: 12px; }
        @media (max-width: 768px) {
            .stats { flex-direction: column; }
            .stat-card { text-align: left; }
            th, td { padding: 8px; font-size: 12px; }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Leads Dashboard - Secure I.T. Services</h1>
        <div class="stats">
            <div class="stat-card"><div class="stat-value">{{.Total}}</div><div>Total Leads</div></div>
            <div class="stat-card"><div class="stat-value">{{.Today}}</div><div>Today</div></div>
            <div class="stat-card"><div class="stat-value">{{.Week}}</div><div>This Week</div></div>
        </div>
        <button onclick="window.location.reload()" style="background: #fca21a; border: none; padding: 10px 20px; border-radius: 4px; cursor: pointer;">Refresh</button>
    </div>

    <div class="table-container">
        <table>
            <thead>
                <tr>
                    <th>Date/Time</th>
                    <th>Name</th>
                    <th>Service</th>
                    <th>Contact</th>
                    <th>Message</th>
                    <th>Actions</th>
                </tr>
            </thead>
            <tbody>
{{range .Rows}}                <tr>
                    <td>{{.When}}</td>
                    <td><strong>{{.Name}}</strong></td>
                    <td>{{.Service}}</td>
                    <td>{{.Email}}<br>{{.Phone}}</td>
                    <td class="message" title="{{.Message}}">{{.Message}}</td>
                    <td class="action-buttons">
                        <a href="{{.TelLink}}" class="call-btn">Call</a>
                        <a href="{{.WhatsAppLink}}" class="whatsapp-btn" target="_blank">WhatsApp</a>
                        <a href="{{.MailLink}}" class="email-btn">Email</a>
                    </td>
                </tr>
{{end}}            </tbody>
        </table>
    </div>

    <div class="footer">
        Last updated: {{.UpdatedAt}}
        <br>
        <a href="{{.DownloadURL}}" style="color: #fca21a;">Download CSV</a>
    </div>
</body>
</html>
`))
