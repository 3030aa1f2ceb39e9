package components

// script forwards browser input to the server and redraws the keyboard.
const script = `
(function () {
  const body = document.body;
  const query = () => "?width=" + body.dataset.width + "&height=" + body.dataset.height +
    "&scale=" + body.dataset.scale + "&theme=" + body.dataset.theme;

  async function redraw() {
    const resp = await fetch("/keyboard" + query());
    if (resp.ok) {
      document.getElementById("keyboard").outerHTML = await resp.text();
    }
  }

  async function send(events) {
    await fetch("/api/events", {method: "POST", body: JSON.stringify(events)});
    await redraw();
  }

  document.addEventListener("keydown", (e) => {
    if (!e.repeat) { e.preventDefault(); send([{type: "key", key: e.key, pressed: true}]); }
  });
  document.addEventListener("keyup", (e) => {
    e.preventDefault(); send([{type: "key", key: e.key, pressed: false}]);
  });
  document.addEventListener("mousedown", (e) => send([{type: "mouse", button: e.button + 1, pressed: true}]));
  document.addEventListener("mouseup", (e) => send([{type: "mouse", button: e.button + 1, pressed: false}]));
  document.addEventListener("contextmenu", (e) => e.preventDefault());
  document.addEventListener("wheel", (e) => {
    send([{type: "wheel", delta: e.deltaY < 0 ? 1 : -1}]);
    setTimeout(redraw, 150);
  });
  window.addEventListener("blur", async () => {
    await fetch("/api/release", {method: "POST"});
    await redraw();
  });

  const layer = document.getElementById("layer-select");
  if (layer) {
    layer.addEventListener("change", async () => {
      await fetch("/api/layer", {method: "POST", body: JSON.stringify({name: layer.value})});
      await redraw();
    });
  }
})();
`
