package remote

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>fitroom</title>
    <style>
        body {
            margin: 0;
            padding: 24px;
            font-family: Arial, sans-serif;
            background: #111;
            color: #eee;
        }
        #status {
            font-size: 12px;
            color: #888;
            margin-bottom: 16px;
        }
        button {
            display: block;
            width: 220px;
            margin: 8px 0;
            padding: 12px;
            font-size: 16px;
            border: 1px solid #444;
            border-radius: 6px;
            background: #222;
            color: #eee;
            cursor: pointer;
        }
        button.visible { background: #2d6a4f; border-color: #52b788; }
        button.loading { background: #5c4d1a; }
        button.failed { background: #6a2d2d; cursor: not-allowed; }
    </style>
</head>
<body>
    <div id="status">connecting...</div>
    <button id="upper-clothes-btn">Upper clothes</button>
    <button id="lower-clothes-btn">Lower clothes</button>
    <button id="accessories-btn">Accessories</button>
    <button id="shoes-btn">Shoes</button>
    <script>
        const status = document.getElementById('status');
        const buttons = document.querySelectorAll('button');
        let ws;

        function connect() {
            ws = new WebSocket('ws://' + location.host + '/ws');
            ws.onopen = () => { status.textContent = 'connected'; };
            ws.onclose = () => {
                status.textContent = 'disconnected, retrying...';
                setTimeout(connect, 1000);
            };
            ws.onmessage = (e) => {
                const ev = JSON.parse(e.data);
                const btn = document.getElementById(ev.id);
                if (!btn) return;
                btn.className = ev.state;
            };
        }

        buttons.forEach((btn) => {
            btn.addEventListener('click', () => {
                if (ws && ws.readyState === WebSocket.OPEN) {
                    ws.send(JSON.stringify({ activate: btn.id }));
                }
            });
        });

        connect();
    </script>
</body>
</html>
`
