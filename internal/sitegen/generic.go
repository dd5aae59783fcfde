package sitegen

// GenericTemplateHTML is the built-in fallback shell used when the requested
// template id is unknown or its HTML cannot be fetched from the templates
// bucket. It carries the same placeholder tokens as a bucket template so the
// substitution pass treats both identically.
const GenericTemplateHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{COMPANY_NAME}}</title>
  <style>
    body { font-family: sans-serif; margin: 0; background-color: #f0f0f0; color: #333; }
    .hero { background-color: {{PRIMARY_COLOR}}; color: white; padding: 60px 20px; text-align: center; }
    .hero h1 { font-size: 3em; margin-bottom: 20px; }
    .hero p { font-size: 1.2em; }
    .content { padding: 40px 20px; max-width: 800px; margin: 0 auto; }
    .contact { background-color: #eee; padding: 40px 20px; text-align: center; }
  </style>
</head>
<body>
  <div class="hero">
    <h1>{{COMPANY_NAME}}</h1>
    <p>{{ACTIVITY_DESCRIPTION}}</p>
  </div>
  <div class="content">
    <h2>Nos Services</h2>
    <p>Découvrez ce que nous faisons pour vous.</p>
  </div>
  <div class="contact">
    <h2>Contactez-nous</h2>
    <p>Email: contact@{{SUBDOMAIN}}.ctcsite.com</p>
    <p>Téléphone: {{PHONE_NUMBER}}</p>
  </div>
</body>
</html>
`
